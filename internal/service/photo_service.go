package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"pholio/internal/media/derive"
	"pholio/internal/media/sniffer"
	"pholio/internal/models"
	"pholio/internal/repository"
)

var (
	ErrFileRequired      = errors.New("image file is required")
	ErrTitleRequired     = errors.New("title is required")
	ErrUnsupportedFormat = errors.New("unsupported image format")
)

const (
	imageKeyPrefix     = "photos/"
	thumbnailKeyPrefix = "thumbnails/"
)

type PhotoService struct {
	photos PhotoStore
	blobs  BlobStore
	log    zerolog.Logger
}

func NewPhotoService(photos PhotoStore, blobs BlobStore, log zerolog.Logger) *PhotoService {
	return &PhotoService{
		photos: photos,
		blobs:  blobs,
		log:    log,
	}
}

type IngestInput struct {
	Data         []byte
	Filename     string
	DeclaredMIME string
	Title        string
	Description  *string
	Location     *string
	DateTaken    *time.Time
}

// Ingest runs the upload pipeline: validate, derive the thumbnail and display
// variants, upload both concurrently, then record the photo row. Any step
// failing aborts the whole operation; blobs already uploaded in a failed
// attempt are left behind rather than cleaned up.
func (s *PhotoService) Ingest(ctx context.Context, input IngestInput) (models.Photo, error) {
	if strings.TrimSpace(input.Title) == "" {
		return models.Photo{}, ErrTitleRequired
	}
	if len(input.Data) == 0 {
		return models.Photo{}, ErrFileRequired
	}

	head := input.Data
	if len(head) > 512 {
		head = head[:512]
	}
	detected, err := sniffer.DetectHead(head)
	if err != nil {
		return models.Photo{}, ErrUnsupportedFormat
	}
	// The sniffed type is authoritative; a lying Content-Type header is
	// only worth a log line.
	if input.DeclaredMIME != "" && input.DeclaredMIME != detected.MIME {
		s.log.Debug().
			Str("declared", input.DeclaredMIME).
			Str("detected", detected.MIME).
			Str("filename", input.Filename).
			Msg("upload content type mismatch")
	}

	display, thumbnail, err := derive.Variants(input.Data)
	if err != nil {
		return models.Photo{}, fmt.Errorf("derive variants: %w", err)
	}

	baseName := objectBaseName(time.Now().UTC(), input.Filename)
	imageKey := imageKeyPrefix + baseName
	thumbnailKey := thumbnailKeyPrefix + baseName

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.blobs.Put(gctx, imageKey, bytes.NewReader(display.Data), int64(len(display.Data)), "image/jpeg")
	})
	g.Go(func() error {
		return s.blobs.Put(gctx, thumbnailKey, bytes.NewReader(thumbnail.Data), int64(len(thumbnail.Data)), "image/jpeg")
	})
	if err := g.Wait(); err != nil {
		return models.Photo{}, fmt.Errorf("upload variants: %w", err)
	}

	photo, err := s.photos.Create(ctx, repository.PhotoCreate{
		Title:        strings.TrimSpace(input.Title),
		Description:  input.Description,
		Location:     input.Location,
		DateTaken:    input.DateTaken,
		ImageURL:     s.blobs.PublicURL(imageKey),
		ThumbnailURL: s.blobs.PublicURL(thumbnailKey),
	})
	if err != nil {
		return models.Photo{}, fmt.Errorf("save photo: %w", err)
	}

	s.log.Info().
		Int64("photo_id", photo.ID).
		Int("display_width", display.Width).
		Int("thumbnail_width", thumbnail.Width).
		Msg("photo ingested")

	return photo, nil
}

func (s *PhotoService) List(ctx context.Context) ([]models.Photo, error) {
	return s.photos.List(ctx)
}

func (s *PhotoService) Get(ctx context.Context, id int64) (models.Photo, error) {
	return s.photos.GetByID(ctx, id)
}

func (s *PhotoService) Random(ctx context.Context) (models.Photo, error) {
	return s.photos.Random(ctx)
}

func (s *PhotoService) Update(ctx context.Context, id int64, upd repository.PhotoUpdate) (models.Photo, error) {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return models.Photo{}, ErrTitleRequired
	}
	return s.photos.Update(ctx, id, upd)
}

// Delete removes both backing blobs best-effort, then the row. A blob that
// fails to delete is logged and orphaned; the row is the authoritative
// existence signal, so a row-delete failure is returned to the caller.
func (s *PhotoService) Delete(ctx context.Context, id int64) error {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		return err
	}

	for _, rawURL := range []string{photo.ImageURL, photo.ThumbnailURL} {
		objectKey, err := s.blobs.ObjectKeyFromURL(rawURL)
		if err != nil {
			s.log.Warn().Err(err).Int64("photo_id", id).Msg("unresolvable blob url")
			continue
		}
		if err := s.blobs.Remove(ctx, objectKey); err != nil {
			s.log.Warn().Err(err).Int64("photo_id", id).Str("object_key", objectKey).Msg("blob delete failed")
		}
	}

	return s.photos.Delete(ctx, id)
}

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// objectBaseName builds a collision-resistant object name from the upload
// time and the sanitized original filename. Both variants share it.
func objectBaseName(now time.Time, filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = strings.TrimSuffix(name, path.Ext(name))
	name = strings.Join(strings.Fields(name), "-")
	name = unsafeKeyChars.ReplaceAllString(name, "")
	if name == "" {
		name = "upload"
	}
	return fmt.Sprintf("%d-%s.jpg", now.UnixMilli(), name)
}
