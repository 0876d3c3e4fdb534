package container

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	infraCache "library-backend/internal/infrastructure/cache"
	"library-backend/internal/infrastructure/database"
	"library-backend/pkg/cache"

	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	borrowHandler "library-backend/internal/domains/borrow/handler"
	borrowRepo "library-backend/internal/domains/borrow/repository"
	borrowService "library-backend/internal/domains/borrow/service"
)

// Container is the root of the dependency graph. Everything in it is a
// process-lifetime singleton, initialized once at startup in dependency
// order: config, infrastructure, repositories, services, handlers.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	BookRepo   bookRepo.RepositoryInterface
	BorrowRepo borrowRepo.RepositoryInterface

	BookService   bookService.ServiceInterface
	BorrowService borrowService.ServiceInterface

	BookHandler   *bookHandler.BookHandler
	BorrowHandler *borrowHandler.BorrowHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Addr,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	// A dead Redis is not fatal; repositories fall through to the
	// database on cache errors.
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Msg("Redis connection failed (non-critical)")
	}
	c.Cache = redisCache

	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool, redisCache)
	c.BorrowRepo = borrowRepo.NewPostgresRepository(db.Pool, redisCache)

	c.BookService = bookService.NewBookService(c.BookRepo)
	c.BorrowService = borrowService.NewBorrowService(c.BorrowRepo)

	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.BorrowHandler = borrowHandler.NewBorrowHandler(c.BorrowService)

	return c, nil
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis client")
		}
	}
}
