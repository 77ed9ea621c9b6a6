package repositories

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"personal-diary/models"
)

// MemoryPostStore is a map-backed PostStore used in tests and local runs
// without MongoDB.
type MemoryPostStore struct {
	mu    sync.RWMutex
	posts map[string]models.Post
}

var _ PostStore = (*MemoryPostStore)(nil)

func NewMemoryPostStore() *MemoryPostStore {
	return &MemoryPostStore{posts: make(map[string]models.Post)}
}

func (s *MemoryPostStore) Create(ctx context.Context, p models.Post) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	p.ID = primitive.NewObjectID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Tags == nil {
		p.Tags = []string{}
	}
	s.posts[p.ID.Hex()] = p
	return p, nil
}

func (s *MemoryPostStore) GetByID(ctx context.Context, id string) (models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	return p, nil
}

func (s *MemoryPostStore) List(ctx context.Context) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]models.Post, 0, len(s.posts))
	for _, p := range s.posts {
		posts = append(posts, p)
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *MemoryPostStore) ListByDate(ctx context.Context, day time.Time) ([]models.Post, error) {
	start := models.DayOf(day)
	end := start.Add(24 * time.Hour)

	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := []models.Post{}
	for _, p := range s.posts {
		if !p.Date.Before(start) && p.Date.Before(end) {
			posts = append(posts, p)
		}
	}
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *MemoryPostStore) Update(ctx context.Context, id string, patch models.PostPatch) (models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		return models.Post{}, ErrNotFound
	}
	if patch.IsEmpty() {
		return p, nil
	}

	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Date != nil {
		p.Date = models.DayOf(*patch.Date)
	}
	if patch.Mood != nil {
		p.Mood = *patch.Mood
	}
	if patch.Tags != nil {
		tags := *patch.Tags
		if tags == nil {
			tags = []string{}
		}
		p.Tags = tags
	}
	p.UpdatedAt = time.Now()
	s.posts[id] = p
	return p, nil
}

func (s *MemoryPostStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return ErrNotFound
	}
	delete(s.posts, id)
	return nil
}
