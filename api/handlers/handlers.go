package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"personal-diary/cache"
	"personal-diary/dto"
	"personal-diary/logger"
	"personal-diary/models"
	"personal-diary/repositories"
	"personal-diary/services"
	"personal-diary/titler"
)

// writeError maps domain errors onto HTTP statuses. Anything unexpected is
// logged and reported as a generic 500 so storage internals never leak out.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: err.Error()})
	case errors.Is(err, repositories.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponseDTO{Error: "post not found"})
	default:
		logger.ErrorWithFields("request failed", logger.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"error":  err.Error(),
		})
		c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "internal server error"})
	}
}

// serveListWithCache consults the response cache before falling back to the
// loader. Cache failures are logged and bypassed, never surfaced.
func serveListWithCache(c *gin.Context, tc *cache.TagCache, key string, load func() ([]models.Post, error)) {
	ctx := c.Request.Context()
	if tc != nil {
		if cached, err := tc.Get(ctx, key); err == nil {
			c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
			return
		} else if !cache.IsMiss(err) {
			logger.ErrorWithFields("cache read failed", logger.Fields{"key": key, "error": err.Error()})
		}
	}

	posts, err := load()
	if err != nil {
		writeError(c, err)
		return
	}
	if tc != nil {
		if buf, err := json.Marshal(posts); err == nil {
			if err := tc.Set(ctx, key, string(buf), cache.TagPosts); err != nil {
				logger.ErrorWithFields("cache write failed", logger.Fields{"key": key, "error": err.Error()})
			}
		}
	}
	c.JSON(http.StatusOK, posts)
}

func invalidatePosts(c *gin.Context, tc *cache.TagCache) {
	if tc == nil {
		return
	}
	if err := tc.InvalidateTag(c.Request.Context(), cache.TagPosts); err != nil {
		logger.ErrorWithFields("cache invalidation failed", logger.Fields{"tag": cache.TagPosts, "error": err.Error()})
	}
}

// ListPostsHandler godoc
// @Summary      List posts
// @Description  List all diary entries, newest diary day first
// @Tags         posts
// @Produce      json
// @Success      200  {array}  models.Post
// @Router       /api/posts [get]
func ListPostsHandler(svc *services.PostService, tc *cache.TagCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		serveListWithCache(c, tc, "posts:all", func() ([]models.Post, error) {
			return svc.List(c.Request.Context())
		})
	}
}

// ListPostsByDateHandler godoc
// @Summary      List posts for a calendar day
// @Description  List diary entries whose date falls on the given local day
// @Tags         posts
// @Param        date  path  string  true  "Calendar day (YYYY-MM-DD)"
// @Produce      json
// @Success      200  {array}   models.Post
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /api/posts/date/{date} [get]
func ListPostsByDateHandler(svc *services.PostService, tc *cache.TagCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		dateStr := c.Param("date")
		serveListWithCache(c, tc, "posts:date:"+dateStr, func() ([]models.Post, error) {
			return svc.ListByDate(c.Request.Context(), dateStr)
		})
	}
}

// GetPostHandler godoc
// @Summary      Get post by id
// @Tags         posts
// @Param        id  path  string  true  "Post id"
// @Produce      json
// @Success      200  {object}  models.Post
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/posts/{id} [get]
func GetPostHandler(svc *services.PostService) gin.HandlerFunc {
	return func(c *gin.Context) {
		post, err := svc.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, post)
	}
}

// CreatePostHandler godoc
// @Summary      Create a post
// @Description  Create a diary entry; id and timestamps are server-assigned
// @Tags         posts
// @Accept       json
// @Param        post  body  dto.CreatePostRequest  true  "New post"
// @Produce      json
// @Success      201  {object}  models.Post
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Router       /api/posts [post]
func CreatePostHandler(svc *services.PostService, tc *cache.TagCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.CreatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body: " + err.Error()})
			return
		}
		post, err := svc.Create(c.Request.Context(), req)
		if err != nil {
			writeError(c, err)
			return
		}
		invalidatePosts(c, tc)
		c.JSON(http.StatusCreated, post)
	}
}

// UpdatePostHandler godoc
// @Summary      Update a post
// @Description  Partial update; only supplied fields change
// @Tags         posts
// @Accept       json
// @Param        id    path  string                 true  "Post id"
// @Param        post  body  dto.UpdatePostRequest  true  "Changed fields"
// @Produce      json
// @Success      200  {object}  models.Post
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/posts/{id} [put]
func UpdatePostHandler(svc *services.PostService, tc *cache.TagCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.UpdatePostRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "invalid request body: " + err.Error()})
			return
		}
		post, err := svc.Update(c.Request.Context(), c.Param("id"), req)
		if err != nil {
			writeError(c, err)
			return
		}
		invalidatePosts(c, tc)
		c.JSON(http.StatusOK, post)
	}
}

// DeletePostHandler godoc
// @Summary      Delete a post
// @Tags         posts
// @Param        id  path  string  true  "Post id"
// @Success      204  "deleted"
// @Failure      404  {object}  dto.ErrorResponseDTO
// @Router       /api/posts/{id} [delete]
func DeletePostHandler(svc *services.PostService, tc *cache.TagCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		invalidatePosts(c, tc)
		c.Status(http.StatusNoContent)
	}
}

// GenerateTitleHandler godoc
// @Summary      Suggest a title
// @Description  Ask the AI helper for a short title based on post content
// @Tags         ai
// @Accept       json
// @Param        request  body  dto.GenerateTitleRequest  true  "Post content"
// @Produce      json
// @Success      200  {object}  dto.GenerateTitleResponse
// @Failure      400  {object}  dto.ErrorResponseDTO
// @Failure      503  {object}  dto.ErrorResponseDTO
// @Router       /api/ai/generate-title [post]
func GenerateTitleHandler(gen titler.Generator) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req dto.GenerateTitleRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "content must be a non-empty string"})
			return
		}
		if strings.TrimSpace(req.Content) == "" {
			c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "content must be a non-empty string"})
			return
		}

		title, err := gen.GenerateTitle(c.Request.Context(), req.Content)
		if err != nil {
			switch {
			case errors.Is(err, titler.ErrEmptyContent):
				c.JSON(http.StatusBadRequest, dto.ErrorResponseDTO{Error: "content must be a non-empty string"})
			case errors.Is(err, titler.ErrNotConfigured):
				logger.Log.Error("title generation unavailable: " + err.Error())
				c.JSON(http.StatusServiceUnavailable, dto.ErrorResponseDTO{Error: "title generation is not configured"})
			default:
				logger.ErrorWithFields("title generation failed", logger.Fields{"error": err.Error()})
				c.JSON(http.StatusInternalServerError, dto.ErrorResponseDTO{Error: "failed to generate title"})
			}
			return
		}
		c.JSON(http.StatusOK, dto.GenerateTitleResponse{Title: title})
	}
}
