package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gytech/flightdesk/internal/domain"
)

// FeedUseCase is the slice of the core the feed handlers need. The viewer is
// always the currently logged-in user.
type FeedUseCase interface {
	LatestPostID(ctx context.Context) (int64, bool, error)
	GetPost(ctx context.Context, id, viewerID int64) (*domain.Post, error)
	PreviousPost(ctx context.Context, cur, viewerID int64) (*domain.Post, error)
	PublishPost(ctx context.Context, title, body string, authorID int64, imagePath string) (int64, error)
	DeletePost(ctx context.Context, id, requesterID int64) error
	SetPostLiked(ctx context.Context, id, viewerID int64, liked bool) error
	CurrentUserID() int64
}

type FeedHandler struct {
	service FeedUseCase
}

func NewFeedHandler(service FeedUseCase) *FeedHandler {
	return &FeedHandler{service: service}
}

func (h *FeedHandler) Register(router *gin.RouterGroup) {
	router.GET("/latest", h.latest)
	router.GET("/:id", h.get)
	router.GET("/:id/previous", h.previous)
	router.POST("/", h.publish)
	router.DELETE("/:id", h.delete)
	router.PUT("/:id/like", h.setLiked)
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return 0, false
	}
	return id, true
}

func (h *FeedHandler) latest(c *gin.Context) {
	id, ok, err := h.service.LatestPostID(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"empty": true})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

func (h *FeedHandler) get(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := h.service.GetPost(c.Request.Context(), id, h.service.CurrentUserID())
	if err != nil {
		respondErr(c, err)
		return
	}
	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *FeedHandler) previous(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	post, err := h.service.PreviousPost(c.Request.Context(), id, h.service.CurrentUserID())
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *FeedHandler) publish(c *gin.Context) {
	var req struct {
		Title     string `json:"title"`
		Body      string `json:"body"`
		ImagePath string `json:"imagePath"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	id, err := h.service.PublishPost(c.Request.Context(), req.Title, req.Body, h.service.CurrentUserID(), req.ImagePath)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

func (h *FeedHandler) delete(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	if err := h.service.DeletePost(c.Request.Context(), id, h.service.CurrentUserID()); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FeedHandler) setLiked(c *gin.Context) {
	id, ok := postID(c)
	if !ok {
		return
	}
	var req struct {
		Liked bool `json:"liked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.service.SetPostLiked(c.Request.Context(), id, h.service.CurrentUserID(), req.Liked); err != nil {
		respondErr(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
