package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"slidedeck-backend/internal/config"
	maintenanceHandler "slidedeck-backend/internal/domains/maintenance/handler"
	maintenanceService "slidedeck-backend/internal/domains/maintenance/service"
	slideHandler "slidedeck-backend/internal/domains/slide/handler"
	slideRepo "slidedeck-backend/internal/domains/slide/repository"
	slideService "slidedeck-backend/internal/domains/slide/service"
	imageHandler "slidedeck-backend/internal/domains/slideimage/handler"
	imageRepo "slidedeck-backend/internal/domains/slideimage/repository"
	imageService "slidedeck-backend/internal/domains/slideimage/service"
	infraCache "slidedeck-backend/internal/infrastructure/cache"
	"slidedeck-backend/internal/infrastructure/database"
	"slidedeck-backend/internal/infrastructure/generation"
	"slidedeck-backend/internal/infrastructure/storage"
	"slidedeck-backend/pkg/cache"
	"slidedeck-backend/pkg/jwt"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph. Every component is a
// singleton living for the whole process lifetime.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	Storage    *storage.MinIOStorage
	Generator  generation.Generator
	JWTManager *jwt.Manager

	SlideRepo slideRepo.Repository
	ImageRepo imageRepo.Repository

	SlideService       slideService.Service
	ImageService       imageService.Service
	MaintenanceService maintenanceService.Service

	SlideHandler       *slideHandler.SlideHandler
	ImageHandler       *imageHandler.ImageHandler
	MaintenanceHandler *maintenanceHandler.MaintenanceHandler
}

// ========================================
// CONSTRUCTOR
// ========================================

// NewContainer builds the full dependency graph in order: config first,
// then infrastructure, then repositories, services and handlers. Getting
// the order wrong means a nil pointer at startup, so keep it linear.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	if err := c.initInfrastructure(); err != nil {
		return nil, err
	}

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Msg("DI container initialized")
	return c, nil
}

// ========================================
// INFRASTRUCTURE
// ========================================

func (c *Container) initInfrastructure() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db
	log.Info().Msg("Database connected")

	redisCache := infraCache.NewRedisCache(
		c.Config.Redis.Host,
		c.Config.Redis.Password,
		c.Config.Redis.DB,
	)
	// Redis failure is non-critical: the app serves from Postgres either way.
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
		} else {
			log.Info().Msg("Redis connected")
		}
	}
	c.Cache = redisCache

	store, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("failed to init object storage: %w", err)
	}
	c.Storage = store
	log.Info().Str("bucket", c.Config.MinIO.Bucket).Msg("Object storage ready")

	gen, err := generation.NewGeminiGenerator(context.Background(), c.Config.Generation, store)
	if err != nil {
		return fmt.Errorf("failed to init image generator: %w", err)
	}
	c.Generator = gen
	log.Info().Str("model", c.Config.Generation.Model).Msg("Image generator ready")

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessTokenExpiry)
	return nil
}

// ========================================
// REPOSITORIES / SERVICES / HANDLERS
// ========================================

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.SlideRepo = slideRepo.NewPostgresRepository(pool)
	c.ImageRepo = imageRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.ImageService = imageService.NewImageService(c.ImageRepo, c.SlideRepo, c.Generator, c.Cache)
	c.SlideService = slideService.NewSlideService(c.SlideRepo, c.ImageService)
	c.MaintenanceService = maintenanceService.NewMaintenanceService(c.SlideRepo, c.ImageRepo, c.Cache)
}

func (c *Container) initHandlers() {
	c.SlideHandler = slideHandler.NewSlideHandler(c.SlideService)
	c.ImageHandler = imageHandler.NewImageHandler(c.ImageService)
	c.MaintenanceHandler = maintenanceHandler.NewMaintenanceHandler(c.MaintenanceService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup releases external connections. Call on shutdown, reverse of init
// order.
func (c *Container) Cleanup() {
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis connection")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("Container cleaned up")
}
