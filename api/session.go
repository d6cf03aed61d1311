package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionUseCase covers the connection lifecycle and both authentication
// contexts exposed to the UI.
type SessionUseCase interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context)
	IsConnected() bool

	AdminLogin(ctx context.Context, name, password string) error
	AdminLogout()
	IsAdminLoggedIn() bool
	CurrentAdminName() string

	Register(ctx context.Context, email, username, password, confirm string) error
	Login(ctx context.Context, username, password string) error
	Logout()
	IsUserLoggedIn() bool
	CurrentUserID() int64
	CurrentUserName() string
	CurrentUserEmail() string
}

type SessionHandler struct {
	service SessionUseCase
}

func NewSessionHandler(service SessionUseCase) *SessionHandler {
	return &SessionHandler{service: service}
}

func (h *SessionHandler) Register(router *gin.RouterGroup) {
	router.POST("/connect", h.connect)
	router.POST("/disconnect", h.disconnect)
	router.GET("/status", h.status)

	router.POST("/admin/login", h.adminLogin)
	router.POST("/admin/logout", h.adminLogout)
	router.GET("/admin/session", h.adminSession)

	router.POST("/users/register", h.register)
	router.POST("/users/login", h.login)
	router.POST("/users/logout", h.logout)
	router.GET("/users/session", h.userSession)
}

func (h *SessionHandler) connect(c *gin.Context) {
	if err := h.service.Connect(c.Request.Context()); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"connected": true})
}

func (h *SessionHandler) disconnect(c *gin.Context) {
	h.service.Disconnect(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"connected": false})
}

func (h *SessionHandler) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"connected": h.service.IsConnected()})
}

type loginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

func (h *SessionHandler) adminLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.service.AdminLogin(c.Request.Context(), req.Name, req.Password); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": h.service.CurrentAdminName()})
}

func (h *SessionHandler) adminLogout(c *gin.Context) {
	h.service.AdminLogout()
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) adminSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"loggedIn": h.service.IsAdminLoggedIn(),
		"name":     h.service.CurrentAdminName(),
	})
}

type registerRequest struct {
	Email           string `json:"email"`
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (h *SessionHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.service.Register(c.Request.Context(), req.Email, req.Username, req.Password, req.ConfirmPassword); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"username": req.Username})
}

func (h *SessionHandler) login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.service.Login(c.Request.Context(), req.Username, req.Password); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":    h.service.CurrentUserID(),
		"name":  h.service.CurrentUserName(),
		"email": h.service.CurrentUserEmail(),
	})
}

func (h *SessionHandler) logout(c *gin.Context) {
	h.service.Logout()
	c.Status(http.StatusNoContent)
}

func (h *SessionHandler) userSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"loggedIn": h.service.IsUserLoggedIn(),
		"id":       h.service.CurrentUserID(),
		"name":     h.service.CurrentUserName(),
		"email":    h.service.CurrentUserEmail(),
	})
}
