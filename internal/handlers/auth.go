package handlers

import (
	"errors"
	"log"
	"net/http"

	"safinaland-api/internal/auth"
	"safinaland-api/internal/database"
	"safinaland-api/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthHandler handles admin login and token verification.
type AuthHandler struct {
	db      *database.GormDB
	tokens  *auth.TokenService
	limiter *ratelimit.LoginLimiter
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *database.GormDB, tokens *auth.TokenService, limiter *ratelimit.LoginLimiter) *AuthHandler {
	return &AuthHandler{db: db, tokens: tokens, limiter: limiter}
}

// Login handles POST /api/login.
func (h *AuthHandler) Login(c *gin.Context) {
	if !h.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"message": "Too many login attempts, try again later"})
		return
	}

	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required"})
		return
	}

	admin, err := h.db.GetAdminByUsername(req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		log.Printf("Auth: Login lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if !auth.CheckPassword(admin.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Issue(admin.ID, admin.Username)
	if err != nil {
		log.Printf("Auth: Token issue failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"admin": gin.H{"id": admin.ID, "username": admin.Username},
	})
}

// Verify handles GET /api/verify behind the auth middleware.
func (h *AuthHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"user": gin.H{
			"id":       c.GetUint(auth.ContextAdminID),
			"username": c.GetString(auth.ContextAdminUsername),
		},
	})
}
