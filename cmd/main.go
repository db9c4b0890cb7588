package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/imyashkale/kubegate/internal/cluster"
	"github.com/imyashkale/kubegate/internal/config"
	"github.com/imyashkale/kubegate/internal/database"
	"github.com/imyashkale/kubegate/internal/handlers"
	"github.com/imyashkale/kubegate/internal/logger"
	"github.com/imyashkale/kubegate/internal/models"
	"github.com/imyashkale/kubegate/internal/repository"
	"github.com/imyashkale/kubegate/internal/router"
	"github.com/imyashkale/kubegate/internal/services"
)

func main() {

	ctx := context.Background()

	// Load application configuration
	cfg := config.New()
	log.Println("Configuration loaded successfully")

	// Initialize structured logging
	logger.Init(cfg.LogLevel)

	// Connect to PostgreSQL and apply schema migrations
	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, cfg.DatabaseURL); err != nil {
		log.Fatalf("Failed to apply migrations: %v", err)
	}

	// Initialize database operations
	userDB := database.NewUserOperations(pool)
	resourceDB := database.NewResourceOperations(pool)
	log.Println("Database operations initialized")

	// Initialize repositories
	userRepo := repository.NewUserRepository(userDB)
	resourceRepo := repository.NewResourceRepository(resourceDB)
	log.Println("Repositories initialized with PostgreSQL backend")

	// Initialize auth service
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.TokenTTLMinutes)*time.Minute)
	log.Println("Auth service initialized")

	// Seed the role table and the default admin account
	if err := userDB.PopulateRoles(ctx); err != nil {
		log.Fatalf("Failed to seed roles: %v", err)
	}
	if err := seedDefaultAdmin(ctx, cfg, authService, userRepo); err != nil {
		log.Fatalf("Failed to seed default admin: %v", err)
	}

	// Create cluster API client
	clusterClient, err := cluster.NewForConfig()
	if err != nil {
		log.Fatalf("Failed to initialize cluster client: %v", err)
	}
	log.Printf("Cluster client initialized for namespace: %s", cfg.TargetNamespace)

	// Initialize the resource lifecycle service
	validator := cluster.NewValidator(clusterClient, cfg.TargetNamespace)
	deployer := cluster.NewDeployer(clusterClient, cfg.TargetNamespace)
	resourceService := services.NewResourceService(
		validator,
		deployer,
		clusterClient,
		resourceRepo,
		userRepo,
		cfg.TargetNamespace,
		cfg.ProtectedDeployments,
	)
	log.Println("Resource lifecycle service initialized")

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	userHandler := handlers.NewUserHandler(userRepo, authService)
	log.Println("Handlers initialized")

	// Setup router
	r := router.Setup(authService, healthHandler, authHandler, resourceHandler, userHandler)

	// Setup graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Println("Shutting down server gracefully...")

		pool.Close()
		log.Println("Database pool closed")

		os.Exit(0)
	}()

	// Start server
	log.Printf("Starting server on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

// seedDefaultAdmin inserts the default admin profile on first run. A
// username collision means a previous run already seeded it.
func seedDefaultAdmin(ctx context.Context, cfg *config.Config, auth *services.AuthService, users repository.UserRepository) error {
	hashed, err := auth.HashPassword(cfg.DefaultAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		FirstName:      "admin",
		LastName:       "admin",
		Username:       cfg.DefaultAdminUsername,
		Email:          cfg.DefaultAdminEmail,
		HashedPassword: hashed,
		Disabled:       false,
		Role:           models.RoleAdmin,
	}

	if err := users.Add(ctx, admin); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			log.Println("Kept admin profile from previous init")
			return nil
		}
		return err
	}

	log.Println("Added default admin profile")
	return nil
}
