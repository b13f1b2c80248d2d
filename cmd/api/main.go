package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"safinaland-api/internal/auth"
	"safinaland-api/internal/cleanup"
	"safinaland-api/internal/config"
	"safinaland-api/internal/database"
	"safinaland-api/internal/handlers"
	"safinaland-api/internal/ratelimit"
	"safinaland-api/internal/scheduler"
	"safinaland-api/internal/search"
	"safinaland-api/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments use the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	configPath := getEnv("CONFIG_PATH", "./config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Printf("Warning: Failed to load config from %s: %v. Using defaults.", configPath, err)
		cfg = config.DefaultConfig()
	} else {
		log.Printf("Loaded configuration from %s", configPath)
	}

	db := openDatabase(cfg)
	defer db.Close()

	if err := db.InitSchema(); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	seedAdmin(db, cfg)

	// Auth stack
	jwtSecret := getEnvOrConfig(cfg.Auth.JWTSecret, "JWT_SECRET", "")
	if jwtSecret == "" {
		log.Fatal("JWT secret is not configured (set auth.jwt_secret or JWT_SECRET)")
	}
	tokens := auth.NewTokenService(jwtSecret, cfg.Auth.TokenTTL())
	loginLimiter := ratelimit.NewLoginLimiter(cfg.Auth.LoginPerMinute, cfg.Auth.LoginPerHour, cfg.Auth.RateLimitLogins)

	// Upload storage and the background file remover
	store, err := storage.NewStore(cfg.Uploads.Dir, cfg.Uploads.URLPrefix)
	if err != nil {
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}
	remover := storage.NewRemover(store)
	remover.Start()
	defer remover.Stop()

	// Optional Meilisearch index
	var searchClient *search.SearchClient
	if cfg.Search.Enabled {
		host := getEnvOrConfig(cfg.Search.Meilisearch.Host, "MEILISEARCH_HOST", "http://localhost:7700")
		apiKey := getEnvOrConfig(cfg.Search.Meilisearch.APIKey, "MEILISEARCH_KEY", "")
		searchClient = search.NewSearchClient(host, apiKey)
		if err := searchClient.InitIndex(); err != nil {
			log.Printf("Warning: Failed to initialize search index: %v", err)
		} else {
			log.Printf("Search index initialized at %s", host)
		}
	}

	// Nightly orphaned-upload sweep
	cleanupService := cleanup.NewService(db, cfg.Uploads.Dir)
	sched := scheduler.NewScheduler(cleanupService, cfg)
	if err := sched.Start(); err != nil {
		log.Printf("Warning: Failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", healthCheck)
	r.Static(cfg.Uploads.URLPrefix, cfg.Uploads.Dir)

	authHandler := handlers.NewAuthHandler(db, tokens, loginLimiter)
	categoryHandler := handlers.NewCategoryHandler(db)
	propertyHandler := handlers.NewPropertyHandler(db, store, remover, searchClient, cfg.Uploads.MaxImages)
	settingsHandler := handlers.NewSettingsHandler(db)
	dashboardHandler := handlers.NewDashboardHandler(db)
	searchHandler := handlers.NewSearchHandler(db, searchClient)
	cleanupHandler := handlers.NewCleanupHandler(cleanupService)

	api := r.Group("/api")
	api.POST("/login", authHandler.Login)
	api.GET("/categories", categoryHandler.List)
	api.GET("/categories/:id", categoryHandler.Get)
	api.GET("/properties", propertyHandler.List)
	api.GET("/properties/:id", propertyHandler.Get)
	api.GET("/settings", settingsHandler.Get)
	api.GET("/search", searchHandler.Search)

	protected := api.Group("", auth.Middleware(tokens))
	protected.GET("/verify", authHandler.Verify)
	protected.POST("/categories", categoryHandler.Create)
	protected.PUT("/categories/:id", categoryHandler.Update)
	protected.DELETE("/categories/:id", categoryHandler.Delete)
	protected.POST("/properties", propertyHandler.Create)
	protected.PUT("/properties/:id", propertyHandler.Update)
	protected.DELETE("/properties/:id", propertyHandler.Delete)
	protected.DELETE("/property-galleries/:id", propertyHandler.DeleteGalleryImage)
	protected.PUT("/settings", settingsHandler.Update)
	protected.GET("/dashboard/stats", dashboardHandler.Stats)
	protected.POST("/search/reindex", searchHandler.Reindex)
	protected.POST("/cleanup/run", cleanupHandler.Run)

	port := getEnvOrConfig(cfg.Server.Port, "PORT", "5000")
	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now(),
	})
}

// openDatabase connects to MySQL or PostgreSQL per configuration, with env
// var overrides for container deployments.
func openDatabase(cfg *config.Config) *database.GormDB {
	dbType := getEnvOrConfig(cfg.Database.Type, "DB_TYPE", "mysql")

	if dbType == "postgres" {
		log.Println("Using PostgreSQL")
		pg := cfg.Database.Postgres
		db, err := database.NewPostgres(
			getEnvOrConfig(pg.Host, "DB_HOST", "localhost"),
			getEnvOrConfig(portString(pg.Port), "DB_PORT", "5432"),
			getEnvOrConfig(pg.User, "DB_USER", "safinaland"),
			getEnvOrConfig(pg.Password, "DB_PASSWORD", ""),
			getEnvOrConfig(pg.Database, "DB_NAME", "safinaland"),
			getEnvOrConfig(pg.SSLMode, "DB_SSLMODE", "disable"),
		)
		if err != nil {
			log.Fatalf("Failed to connect to PostgreSQL: %v", err)
		}
		return db
	}

	log.Println("Using MySQL")
	my := cfg.Database.MySQL
	db, err := database.NewMySQL(
		getEnvOrConfig(my.Host, "DB_HOST", "localhost"),
		getEnvOrConfig(portString(my.Port), "DB_PORT", "3306"),
		getEnvOrConfig(my.User, "DB_USER", "safinaland"),
		getEnvOrConfig(my.Password, "DB_PASSWORD", ""),
		getEnvOrConfig(my.Database, "DB_NAME", "safinaland"),
	)
	if err != nil {
		log.Fatalf("Failed to connect to MySQL: %v", err)
	}
	return db
}

// seedAdmin creates the initial admin account when the table is empty and
// credentials are configured.
func seedAdmin(db *database.GormDB, cfg *config.Config) {
	username := getEnvOrConfig(cfg.Auth.SeedUsername, "ADMIN_USERNAME", "")
	password := getEnvOrConfig(cfg.Auth.SeedPassword, "ADMIN_PASSWORD", "")
	if username == "" || password == "" {
		return
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		log.Printf("Warning: Failed to hash seed admin password: %v", err)
		return
	}
	if err := db.SeedAdmin(username, hash); err != nil {
		log.Printf("Warning: Failed to seed admin account: %v", err)
	}
}

func portString(port int) string {
	if port <= 0 {
		return ""
	}
	return fmt.Sprintf("%d", port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
