package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"library-backend/internal/config"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
	"library-backend/internal/infrastructure/database"
)

// Container wires the dependency graph: config → database → repositories →
// services → handlers. Everything is a singleton for the process lifetime.
type Container struct {
	Config *config.Config
	DB     *database.PostgresDB

	BookRepo bookRepo.Repository
	UserRepo userRepo.Repository

	BookService bookService.ServiceInterface
	UserService userService.ServiceInterface

	BookHandler *bookHandler.Handler
	UserHandler *userHandler.Handler
}

// NewContainer builds the full graph; a failure at any layer aborts startup.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	c.DB = database.NewPostgresDB(cfg.Database)
	if err := c.DB.Connect(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	c.BookRepo = bookRepo.NewRepository(c.DB.Pool)
	c.UserRepo = userRepo.NewRepository(c.DB.Pool)

	c.BookService = bookService.NewService(c.BookRepo)
	c.UserService = userService.NewService(c.UserRepo)

	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.UserHandler = userHandler.NewHandler(c.UserService)

	log.Info().Str("environment", cfg.App.Environment).Msg("container initialized")

	return c, nil
}

// Cleanup releases everything the container owns.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
}
