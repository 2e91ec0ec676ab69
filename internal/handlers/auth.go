package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pholio/internal/middleware"
	"pholio/internal/repository"
	"pholio/internal/service"
)

type signupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	SetupKey string `json:"setupKey"`
}

func (h HandlerSet) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.auth.Signup(c.Request.Context(), service.SignupInput{
		Username: req.Username,
		Password: req.Password,
		SetupKey: req.SetupKey,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSetupKeyRequired):
			c.JSON(http.StatusForbidden, gin.H{"error": "unauthorized"})
		case errors.Is(err, service.ErrMissingFields), errors.Is(err, service.ErrWeakPassword):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, repository.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
		default:
			h.log.Error().Err(err).Msg("signup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "admin user created",
		"username": user.Username,
	})
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	h.setSessionCookie(c, token, int(h.cfg.Security.SessionTTL.Seconds()))

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
		},
	})
}

func (h HandlerSet) Logout(c *gin.Context) {
	// Only a token that resolved to a live session needs revoking; anything
	// else is already as good as logged out.
	token := middleware.SessionToken(c)

	if err := h.auth.Logout(c.Request.Context(), token); err != nil {
		h.log.Error().Err(err).Msg("logout failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}

	h.setSessionCookie(c, "", -1)
	c.Status(http.StatusNoContent)
}

func (h HandlerSet) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	secure := h.cfg.Environment == "production"
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", secure, true)
}
