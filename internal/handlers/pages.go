package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pholio/internal/middleware"
	"pholio/internal/repository"
)

func (h HandlerSet) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"Title": "Pholio",
	})
}

func (h HandlerSet) GalleryPage(c *gin.Context) {
	photos, err := h.photos.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("gallery page failed")
		c.String(http.StatusInternalServerError, "failed to load gallery")
		return
	}

	c.HTML(http.StatusOK, "gallery.html", gin.H{
		"Title":  "Gallery",
		"Photos": photos,
	})
}

func (h HandlerSet) RandomPage(c *gin.Context) {
	photo, err := h.photos.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			c.HTML(http.StatusOK, "random.html", gin.H{"Title": "Random"})
			return
		}
		h.log.Error().Err(err).Msg("random page failed")
		c.String(http.StatusInternalServerError, "failed to load photo")
		return
	}

	c.HTML(http.StatusOK, "random.html", gin.H{
		"Title": "Random",
		"Photo": photo,
	})
}

func (h HandlerSet) FAQPage(c *gin.Context) {
	c.HTML(http.StatusOK, "faq.html", gin.H{
		"Title": "FAQ",
	})
}

func (h HandlerSet) AdminPage(c *gin.Context) {
	admin, _ := middleware.CurrentAdmin(c)

	photos, err := h.photos.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("admin page failed")
		c.String(http.StatusInternalServerError, "failed to load photos")
		return
	}

	c.HTML(http.StatusOK, "admin.html", gin.H{
		"Title":    "Admin",
		"Username": admin.Username,
		"Photos":   photos,
	})
}

func (h HandlerSet) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"Title": "Admin Login",
	})
}
