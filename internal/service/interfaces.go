package service

import (
	"context"
	"io"
	"time"

	"pholio/internal/models"
	"pholio/internal/repository"
)

type AdminUserStore interface {
	Create(ctx context.Context, username string, passwordHash string) (models.AdminUser, error)
	FindByUsername(ctx context.Context, username string) (models.AdminUser, error)
	Count(ctx context.Context) (int64, error)
}

type PhotoStore interface {
	Create(ctx context.Context, in repository.PhotoCreate) (models.Photo, error)
	GetByID(ctx context.Context, id int64) (models.Photo, error)
	List(ctx context.Context) ([]models.Photo, error)
	Random(ctx context.Context) (models.Photo, error)
	Update(ctx context.Context, id int64, upd repository.PhotoUpdate) (models.Photo, error)
	Delete(ctx context.Context, id int64) error
}

type BlobStore interface {
	Put(ctx context.Context, objectKey string, r io.Reader, size int64, contentType string) error
	Remove(ctx context.Context, objectKey string) error
	PublicURL(objectKey string) string
	ObjectKeyFromURL(rawURL string) (string, error)
}

type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
