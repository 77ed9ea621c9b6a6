package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"personal-diary/dto"
	"personal-diary/repositories"
)

func newService() *PostService {
	return NewPostService(repositories.NewMemoryPostStore())
}

func TestCreateRequiresFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	cases := []dto.CreatePostRequest{
		{Content: "<p>hi</p>", Date: "2024-05-01"},
		{Title: "t", Date: "2024-05-01"},
		{Title: "t", Content: "<p>hi</p>"},
		{Title: "t", Content: "<p>hi</p>", Date: "not-a-date"},
	}
	for _, req := range cases {
		_, err := svc.Create(ctx, req)
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("expected validation error for %+v, got %v", req, err)
		}
	}
}

func TestCreateNormalizesDateToCalendarDay(t *testing.T) {
	svc := newService()

	post, err := svc.Create(context.Background(), dto.CreatePostRequest{
		Title:   "A Walk in the Woods",
		Content: "<p>Went hiking today, saw a fox.</p>",
		Date:    "2024-05-01T15:04:05Z",
	})
	assert.NoError(t, err)

	// The RFC3339 timestamp lands on whichever local day it converts to.
	local := time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC).Local()
	want := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)

	assert.True(t, post.Date.Equal(want), "date %v should normalize to local midnight %v", post.Date, want)
	assert.NotNil(t, post.Tags)
	assert.Len(t, post.Tags, 0)
}

func TestCreateAcceptsPlainCalendarDay(t *testing.T) {
	svc := newService()

	post, err := svc.Create(context.Background(), dto.CreatePostRequest{
		Title:   "t",
		Content: "<p>hi</p>",
		Date:    "2024-05-01",
	})
	assert.NoError(t, err)
	assert.True(t, post.Date.Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.Local)))
}

func TestListByDateRejectsBadFormat(t *testing.T) {
	svc := newService()

	_, err := svc.ListByDate(context.Background(), "05/01/2024")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateRejectsBlankingRequiredFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	post, err := svc.Create(ctx, dto.CreatePostRequest{Title: "t", Content: "<p>hi</p>", Date: "2024-05-01"})
	assert.NoError(t, err)

	empty := "  "
	_, err = svc.Update(ctx, post.ID.Hex(), dto.UpdatePostRequest{Title: &empty})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Update(ctx, post.ID.Hex(), dto.UpdatePostRequest{Content: &empty})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdatePassesThroughNotFound(t *testing.T) {
	svc := newService()

	title := "new"
	_, err := svc.Update(context.Background(), "missing", dto.UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
