package diaryclient

import (
	"sync"

	"personal-diary/models"
)

// queryCache is the in-process query cache behind the client. Entries are
// keyed by operation and parameters, and grouped under tags; invalidating a
// tag drops every entry registered with it. There is no per-date
// invalidation: one write clears all cached listings.
type queryCache struct {
	mu      sync.RWMutex
	entries map[string][]models.Post
	tags    map[string]map[string]struct{}
}

func newQueryCache() *queryCache {
	return &queryCache{
		entries: make(map[string][]models.Post),
		tags:    make(map[string]map[string]struct{}),
	}
}

func (q *queryCache) get(key string) ([]models.Post, bool) {
	q.mu.RLock()
	defer q.mu.RUnlock()

	posts, ok := q.entries[key]
	if !ok {
		return nil, false
	}
	// Callers may reorder the result or write through a post's Tags in
	// place; hand out a copy with its own backing arrays.
	return clonePosts(posts), true
}

func (q *queryCache) put(key string, posts []models.Post, tags ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	// Stored entries get their own copy too, so the caller that filled the
	// cache cannot mutate it through the slice it kept.
	q.entries[key] = clonePosts(posts)
	for _, tag := range tags {
		if q.tags[tag] == nil {
			q.tags[tag] = make(map[string]struct{})
		}
		q.tags[tag][key] = struct{}{}
	}
}

func clonePosts(posts []models.Post) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)
	for i := range out {
		if out[i].Tags != nil {
			tags := make([]string, len(out[i].Tags))
			copy(tags, out[i].Tags)
			out[i].Tags = tags
		}
	}
	return out
}

func (q *queryCache) invalidate(tag string) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for key := range q.tags[tag] {
		delete(q.entries, key)
	}
	delete(q.tags, tag)
}
