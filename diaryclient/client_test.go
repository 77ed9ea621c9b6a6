package diaryclient_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"personal-diary/api/router"
	"personal-diary/diaryclient"
	"personal-diary/dto"
	"personal-diary/repositories"
	"personal-diary/services"
)

type stubTitler struct {
	title string
	err   error
}

func (s *stubTitler) GenerateTitle(ctx context.Context, content string) (string, error) {
	return s.title, s.err
}

// countingServer wraps the real router so tests can observe how many
// requests actually reach it.
type countingServer struct {
	inner http.Handler
	hits  int64
}

func (s *countingServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	atomic.AddInt64(&s.hits, 1)
	s.inner.ServeHTTP(w, r)
}

func (s *countingServer) Hits() int64 {
	return atomic.LoadInt64(&s.hits)
}

func newTestServer(t *testing.T) (*diaryclient.Client, *countingServer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := repositories.NewMemoryPostStore()
	svc := services.NewPostService(store)
	counting := &countingServer{inner: router.New(svc, &stubTitler{title: "A Quiet Day"}, nil)}
	srv := httptest.NewServer(counting)
	t.Cleanup(srv.Close)
	return diaryclient.New(srv.URL), counting
}

func TestGetPostsByDateIsCached(t *testing.T) {
	client, srv := newTestServer(t)
	ctx := context.Background()

	_, err := client.GetPostsByDate(ctx, "2024-05-01")
	assert.NoError(t, err)
	first := srv.Hits()

	_, err = client.GetPostsByDate(ctx, "2024-05-01")
	assert.NoError(t, err)
	assert.Equal(t, first, srv.Hits(), "second read should come from the cache")

	// A different date is a different cache key.
	_, err = client.GetPostsByDate(ctx, "2024-05-02")
	assert.NoError(t, err)
	assert.Equal(t, first+1, srv.Hits())
}

func TestCreateInvalidatesCachedQueries(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	posts, err := client.GetPostsByDate(ctx, "2024-05-01")
	assert.NoError(t, err)
	assert.Len(t, posts, 0)

	created, err := client.CreatePost(ctx, dto.CreatePostRequest{
		Title:   "A Walk",
		Content: "<p>Went hiking today, saw a fox.</p>",
		Date:    "2024-05-01",
	})
	assert.NoError(t, err)
	assert.False(t, created.ID.IsZero())

	// The cached empty listing must be gone: the next read refetches and
	// sees the new post.
	posts, err = client.GetPostsByDate(ctx, "2024-05-01")
	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, created.ID, posts[0].ID)
}

func TestCachedResultsAreIsolatedFromCallerMutation(t *testing.T) {
	client, srv := newTestServer(t)
	ctx := context.Background()

	_, err := client.CreatePost(ctx, dto.CreatePostRequest{
		Title:   "A Walk",
		Content: "<p>Went hiking today, saw a fox.</p>",
		Date:    "2024-05-01",
		Tags:    []string{"hiking", "nature"},
	})
	assert.NoError(t, err)

	posts, err := client.ListPosts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, []string{"hiking", "nature"}, posts[0].Tags)
	before := srv.Hits()

	// Writing through the returned slice must not reach the cache.
	posts[0].Tags[0] = "mutated"
	posts[0].Title = "mutated"

	posts, err = client.ListPosts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, before, srv.Hits(), "second read should come from the cache")
	assert.Equal(t, "A Walk", posts[0].Title)
	assert.Equal(t, []string{"hiking", "nature"}, posts[0].Tags)
}

func TestFailedMutationKeepsCache(t *testing.T) {
	client, srv := newTestServer(t)
	ctx := context.Background()

	_, err := client.ListPosts(ctx)
	assert.NoError(t, err)
	before := srv.Hits()

	_, err = client.CreatePost(ctx, dto.CreatePostRequest{Content: "<p>no title</p>", Date: "2024-05-01"})
	var apiErr *diaryclient.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)

	// One hit for the failed create, none for the cached list.
	_, err = client.ListPosts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, before+1, srv.Hits())
}

func TestServerErrorsAreReportedFaithfully(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	_, err := client.GetPost(ctx, "66a0000000000000000000aa")
	assert.Error(t, err)
	assert.ErrorIs(t, err, diaryclient.ErrNotFound)

	var apiErr *diaryclient.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "post not found", apiErr.Message)
}

func TestTransportErrorsAreDistinctFromServerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	client := diaryclient.New(url)
	_, err := client.ListPosts(context.Background())
	assert.Error(t, err)

	var apiErr *diaryclient.APIError
	assert.False(t, errors.As(err, &apiErr), "a transport failure must not look like a server response")
}

func TestGenerateTitleRoundTrip(t *testing.T) {
	client, _ := newTestServer(t)

	title, err := client.GenerateTitle(context.Background(), "<p>Went hiking today, saw a fox.</p>")
	assert.NoError(t, err)
	assert.Equal(t, "A Quiet Day", title)

	_, err = client.GenerateTitle(context.Background(), "")
	var apiErr *diaryclient.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestUpdateAndDeleteRoundTrip(t *testing.T) {
	client, _ := newTestServer(t)
	ctx := context.Background()

	created, err := client.CreatePost(ctx, dto.CreatePostRequest{
		Title: "t", Content: "<p>hi</p>", Date: "2024-05-01",
	})
	assert.NoError(t, err)

	mood := "happy"
	updated, err := client.UpdatePost(ctx, created.ID.Hex(), dto.UpdatePostRequest{Mood: &mood})
	assert.NoError(t, err)
	assert.Equal(t, "happy", updated.Mood)
	assert.Equal(t, created.Title, updated.Title)

	assert.NoError(t, client.DeletePost(ctx, created.ID.Hex()))
	_, err = client.GetPost(ctx, created.ID.Hex())
	assert.ErrorIs(t, err, diaryclient.ErrNotFound)
}
