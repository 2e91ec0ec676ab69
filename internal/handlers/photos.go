package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"pholio/internal/media/sniffer"
	"pholio/internal/models"
	"pholio/internal/repository"
	"pholio/internal/service"
)

const dateLayout = "2006-01-02"

type photoResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  *string   `json:"description"`
	Location     *string   `json:"location"`
	DateTaken    *string   `json:"dateTaken"`
	ImageURL     string    `json:"imageUrl"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func toPhotoResponse(p models.Photo) photoResponse {
	resp := photoResponse{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Location:     p.Location,
		ImageURL:     p.ImageURL,
		ThumbnailURL: p.ThumbnailURL,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.DateTaken != nil {
		date := p.DateTaken.Format(dateLayout)
		resp.DateTaken = &date
	}
	return resp
}

func (h HandlerSet) ListPhotos(c *gin.Context) {
	photos, err := h.photos.List(c.Request.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list photos failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch photos"})
		return
	}

	resp := make([]photoResponse, 0, len(photos))
	for _, photo := range photos {
		resp = append(resp, toPhotoResponse(photo))
	}
	c.JSON(http.StatusOK, resp)
}

func (h HandlerSet) GetPhoto(c *gin.Context) {
	id, ok := photoID(c)
	if !ok {
		return
	}

	photo, err := h.photos.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		h.log.Error().Err(err).Int64("photo_id", id).Msg("get photo failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch photo"})
		return
	}

	c.JSON(http.StatusOK, toPhotoResponse(photo))
}

func (h HandlerSet) RandomPhoto(c *gin.Context) {
	photo, err := h.photos.Random(c.Request.Context())
	if err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "gallery is empty"})
			return
		}
		h.log.Error().Err(err).Msg("random photo failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch photo"})
		return
	}

	c.JSON(http.StatusOK, toPhotoResponse(photo))
}

func (h HandlerSet) CreatePhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	title := c.PostForm("title")
	if err != nil || title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file and title are required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable file"})
		return
	}

	input := service.IngestInput{
		Data:         data,
		Filename:     fileHeader.Filename,
		DeclaredMIME: sniffer.MimeTypeFromHTTP(http.Header(fileHeader.Header)),
		Title:        title,
		Description:  optionalForm(c, "description"),
		Location:     optionalForm(c, "location"),
	}
	if raw := c.PostForm("dateTaken"); raw != "" {
		date, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "dateTaken must be YYYY-MM-DD"})
			return
		}
		input.DateTaken = &date
	}

	photo, err := h.photos.Ingest(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired), errors.Is(err, service.ErrFileRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "file and title are required"})
		case errors.Is(err, service.ErrUnsupportedFormat):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image format"})
		default:
			h.log.Error().Err(err).Msg("photo ingest failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create photo"})
		}
		return
	}

	c.JSON(http.StatusCreated, toPhotoResponse(photo))
}

type updatePhotoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Location    *string `json:"location"`
	DateTaken   *string `json:"dateTaken"`
}

func (h HandlerSet) UpdatePhoto(c *gin.Context) {
	id, ok := photoID(c)
	if !ok {
		return
	}

	var req updatePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	upd := repository.PhotoUpdate{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
	}
	if req.DateTaken != nil {
		if *req.DateTaken == "" {
			upd.ClearDateTaken = true
		} else {
			date, err := time.Parse(dateLayout, *req.DateTaken)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "dateTaken must be YYYY-MM-DD"})
				return
			}
			upd.DateTaken = &date
		}
	}

	if upd.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no fields to update"})
		return
	}

	photo, err := h.photos.Update(c.Request.Context(), id, upd)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "title cannot be empty"})
		case errors.Is(err, repository.ErrPhotoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		default:
			h.log.Error().Err(err).Int64("photo_id", id).Msg("update photo failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update photo"})
		}
		return
	}

	c.JSON(http.StatusOK, toPhotoResponse(photo))
}

func (h HandlerSet) DeletePhoto(c *gin.Context) {
	id, ok := photoID(c)
	if !ok {
		return
	}

	if err := h.photos.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrPhotoNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
			return
		}
		h.log.Error().Err(err).Int64("photo_id", id).Msg("delete photo failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "photo deleted"})
}

func photoID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid photo id"})
		return 0, false
	}
	return id, true
}

func optionalForm(c *gin.Context, field string) *string {
	value := c.PostForm(field)
	if value == "" {
		return nil
	}
	return &value
}
