package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"pholio/internal/cache"
	"pholio/internal/config"
	"pholio/internal/middleware"
	"pholio/internal/repository"
	"pholio/internal/service"
	"pholio/internal/storage"
)

const (
	loginPagePath = "/admin/login"
	adminRootPath = "/admin"
)

// adminDirectory is what the handler set needs from the admin user storage:
// account management for the auth service plus lookups for the session
// middleware.
type adminDirectory interface {
	service.AdminUserStore
	middleware.AdminSource
}

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	auth        *service.AuthService
	photos      *service.PhotoService
	admins      adminDirectory
	revocations service.TokenRevoker
	db          pinger
	cache       pinger
	store       pinger
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cacheClient *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	adminRepo := repository.NewAdminUserRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	revocations := cache.NewRevocationStore(cacheClient)
	auth := service.NewAuthService(adminRepo, revocations, cfg, log)
	photos := service.NewPhotoService(photoRepo, store, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		auth:        auth,
		photos:      photos,
		admins:      adminRepo,
		revocations: revocations,
		db:          db,
		cache:       redisPinger{cacheClient},
		store:       store,
	}
}

func (h HandlerSet) Register(router *gin.Engine) {
	router.Use(middleware.Session(h.cfg.Security.SessionSecret, h.admins, h.revocations))
	router.Use(middleware.PageGate(loginPagePath, adminRootPath))

	api := router.Group("/api")
	api.GET("/healthz", h.Health)

	v1 := api.Group("/v1")
	{
		auth := v1.Group("/auth")
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)

		v1.GET("/photos", h.ListPhotos)
		v1.GET("/photos/random", h.RandomPhoto)
		v1.GET("/photos/:id", h.GetPhoto)

		protected := v1.Group("/photos")
		protected.Use(middleware.RequireAdmin())
		protected.POST("", h.CreatePhoto)
		protected.PATCH("/:id", h.UpdatePhoto)
		protected.DELETE("/:id", h.DeletePhoto)
	}

	router.GET("/", h.HomePage)
	router.GET("/gallery", h.GalleryPage)
	router.GET("/random", h.RandomPage)
	router.GET("/faq", h.FAQPage)

	admin := router.Group(adminRootPath)
	admin.GET("", h.AdminPage)
	admin.GET("/login", h.LoginPage)
}
