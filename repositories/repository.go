package repositories

import (
	"context"
	"errors"
	"time"

	"personal-diary/models"
)

// ErrNotFound is returned when a post with the given identifier does not exist.
var ErrNotFound = errors.New("post not found")

// PostStore is the persistence contract for diary entries.
//
// Identifiers are ObjectID hex strings. An identifier that cannot be a valid
// ObjectID behaves the same as one that is simply absent: ErrNotFound.
type PostStore interface {
	// Create assigns ID, CreatedAt and UpdatedAt and stores the post.
	Create(ctx context.Context, p models.Post) (models.Post, error)

	// GetByID returns the post or ErrNotFound.
	GetByID(ctx context.Context, id string) (models.Post, error)

	// List returns all posts sorted by date desc, then created_at desc.
	List(ctx context.Context) ([]models.Post, error)

	// ListByDate returns posts whose date falls on the calendar day of `day`
	// in local time, sorted by created_at desc.
	ListByDate(ctx context.Context, day time.Time) ([]models.Post, error)

	// Update applies the non-nil fields of the patch and returns the updated
	// post, or ErrNotFound. An empty patch returns the post unchanged and
	// does not bump UpdatedAt.
	Update(ctx context.Context, id string, patch models.PostPatch) (models.Post, error)

	// Delete removes the post or returns ErrNotFound.
	Delete(ctx context.Context, id string) error
}
