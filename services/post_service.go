package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"personal-diary/dto"
	"personal-diary/models"
	"personal-diary/repositories"
)

// ErrValidation marks request-shaped failures that map to HTTP 400.
var ErrValidation = errors.New("validation failed")

// PostService encapsulates business rules for diary entries: required-field
// checks, date parsing and normalization. Storage errors pass through so the
// handler can tell not-found from everything else.
type PostService struct {
	store repositories.PostStore
}

func NewPostService(store repositories.PostStore) *PostService {
	return &PostService{store: store}
}

// ParseDate accepts a plain calendar day or an RFC3339 timestamp.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.ParseInLocation("2006-01-02", s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD or RFC3339", ErrValidation, s)
}

func (s *PostService) Create(ctx context.Context, req dto.CreatePostRequest) (models.Post, error) {
	if strings.TrimSpace(req.Title) == "" {
		return models.Post{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(req.Content) == "" {
		return models.Post{}, fmt.Errorf("%w: content is required", ErrValidation)
	}
	if strings.TrimSpace(req.Date) == "" {
		return models.Post{}, fmt.Errorf("%w: date is required", ErrValidation)
	}
	date, err := ParseDate(req.Date)
	if err != nil {
		return models.Post{}, err
	}

	post := models.Post{
		Title:   req.Title,
		Content: req.Content,
		Date:    models.DayOf(date),
		Mood:    req.Mood,
		Tags:    req.Tags,
	}
	return s.store.Create(ctx, post)
}

func (s *PostService) GetByID(ctx context.Context, id string) (models.Post, error) {
	return s.store.GetByID(ctx, id)
}

func (s *PostService) List(ctx context.Context) ([]models.Post, error) {
	return s.store.List(ctx)
}

// ListByDate validates the YYYY-MM-DD path segment before hitting storage.
func (s *PostService) ListByDate(ctx context.Context, dateStr string) ([]models.Post, error) {
	day, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", ErrValidation, dateStr)
	}
	return s.store.ListByDate(ctx, day)
}

func (s *PostService) Update(ctx context.Context, id string, req dto.UpdatePostRequest) (models.Post, error) {
	patch := models.PostPatch{
		Title:   req.Title,
		Content: req.Content,
		Mood:    req.Mood,
		Tags:    req.Tags,
	}
	if req.Date != nil {
		date, err := ParseDate(*req.Date)
		if err != nil {
			return models.Post{}, err
		}
		patch.Date = &date
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return models.Post{}, fmt.Errorf("%w: title cannot be empty", ErrValidation)
	}
	if patch.Content != nil && strings.TrimSpace(*patch.Content) == "" {
		return models.Post{}, fmt.Errorf("%w: content cannot be empty", ErrValidation)
	}
	return s.store.Update(ctx, id, patch)
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
