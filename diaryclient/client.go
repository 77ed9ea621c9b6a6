// Package diaryclient is the typed Go client for the diary HTTP API.
//
// Read operations are cached in-process under the "Posts" tag; every
// successful mutation invalidates the tag, so the next read of any date
// refetches. Failures are reported as they happened: a transport error
// surfaces as-is, a server-reported error becomes an *APIError.
package diaryclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"personal-diary/dto"
	"personal-diary/httpclient"
	"personal-diary/models"
)

// ErrNotFound is reported when the server answers 404 for a post id.
var ErrNotFound = errors.New("post not found")

// TagPosts groups all cached post queries.
const TagPosts = "Posts"

// APIError is a failure reported by the server, as opposed to a transport
// failure, which surfaces as the underlying error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

type Client struct {
	base  *httpclient.BaseClient
	cache *queryCache
}

func New(baseURL string) *Client {
	return &Client{
		base:  httpclient.NewBaseClient(baseURL),
		cache: newQueryCache(),
	}
}

// NewWithHTTPClient uses a caller-provided http.Client, mainly for tests.
func NewWithHTTPClient(hc *http.Client, baseURL string) *Client {
	return &Client{
		base:  httpclient.NewBaseClientWithClient(hc, baseURL),
		cache: newQueryCache(),
	}
}

// decodeError turns a non-2xx response into an *APIError, preserving the
// server's message when the body carries one.
func decodeError(resp *http.Response) error {
	var body dto.ErrorResponseDTO
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err := json.Unmarshal(raw, &body); err != nil || body.Error == "" {
		body.Error = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: body.Error}
}

func (c *Client) getPosts(ctx context.Context, cacheKey, relPath string) ([]models.Post, error) {
	if posts, ok := c.cache.get(cacheKey); ok {
		return posts, nil
	}

	req, err := c.base.NewRequest(ctx, http.MethodGet, relPath, nil, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp)
	}
	var posts []models.Post
	if err := json.NewDecoder(resp.Body).Decode(&posts); err != nil {
		return nil, err
	}
	c.cache.put(cacheKey, posts, TagPosts)
	return posts, nil
}

// ListPosts returns every diary entry, newest day first.
func (c *Client) ListPosts(ctx context.Context) ([]models.Post, error) {
	return c.getPosts(ctx, "posts", "/api/posts")
}

// GetPostsByDate returns the entries for one calendar day (YYYY-MM-DD).
func (c *Client) GetPostsByDate(ctx context.Context, date string) ([]models.Post, error) {
	return c.getPosts(ctx, "posts:date:"+date, "/api/posts/date/"+date)
}

// GetPost returns a single entry by id.
func (c *Client) GetPost(ctx context.Context, id string) (models.Post, error) {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/api/posts/"+id, nil, nil)
	if err != nil {
		return models.Post{}, err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return models.Post{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Post{}, decodeError(resp)
	}
	var post models.Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// CreatePost submits a new entry and invalidates cached queries on success.
func (c *Client) CreatePost(ctx context.Context, in dto.CreatePostRequest) (models.Post, error) {
	buf, err := json.Marshal(in)
	if err != nil {
		return models.Post{}, err
	}
	req, err := c.base.NewRequest(ctx, http.MethodPost, "/api/posts", nil, bytes.NewReader(buf))
	if err != nil {
		return models.Post{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return models.Post{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return models.Post{}, decodeError(resp)
	}
	var post models.Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return models.Post{}, err
	}
	c.cache.invalidate(TagPosts)
	return post, nil
}

// UpdatePost applies a partial update and invalidates cached queries on
// success.
func (c *Client) UpdatePost(ctx context.Context, id string, in dto.UpdatePostRequest) (models.Post, error) {
	buf, err := json.Marshal(in)
	if err != nil {
		return models.Post{}, err
	}
	req, err := c.base.NewRequest(ctx, http.MethodPut, "/api/posts/"+id, nil, bytes.NewReader(buf))
	if err != nil {
		return models.Post{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return models.Post{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Post{}, decodeError(resp)
	}
	var post models.Post
	if err := json.NewDecoder(resp.Body).Decode(&post); err != nil {
		return models.Post{}, err
	}
	c.cache.invalidate(TagPosts)
	return post, nil
}

// DeletePost removes an entry and invalidates cached queries on success.
func (c *Client) DeletePost(ctx context.Context, id string) error {
	req, err := c.base.NewRequest(ctx, http.MethodDelete, "/api/posts/"+id, nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return decodeError(resp)
	}
	c.cache.invalidate(TagPosts)
	return nil
}

// GenerateTitle asks the server's AI helper for a title suggestion.
func (c *Client) GenerateTitle(ctx context.Context, content string) (string, error) {
	buf, err := json.Marshal(dto.GenerateTitleRequest{Content: content})
	if err != nil {
		return "", err
	}
	req, err := c.base.NewRequest(ctx, http.MethodPost, "/api/ai/generate-title", nil, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}
	var out dto.GenerateTitleResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.Title, nil
}

// Health pings the server.
func (c *Client) Health(ctx context.Context) error {
	req, err := c.base.NewRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return err
	}
	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	return nil
}
