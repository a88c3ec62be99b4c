package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"

	"chronotes/config"
	"chronotes/handler"
	"chronotes/localstore"
	"chronotes/middleware"
	"chronotes/repository"
	"chronotes/services"
	"chronotes/usecase"
	"chronotes/utils"
)

func init() {
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	requiredEnvVars := []string{
		"MONGO_URI",
		"JWT_SECRET_KEY",
	}
	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()
	utils.InitJWT()
}

type appDeps struct {
	db        *mongo.Database
	local     *localstore.Local
	retry     services.RetryPolicy
	cache     *services.SessionCache
	blacklist *services.TokenBlacklist
	generator *services.Generator
	serverCfg config.ServerConfig
}

func setupRouter(deps appDeps) *gin.Engine {
	router := gin.Default()

	userRepo := repository.GetUserRepo(deps.db)
	sessionRepo := repository.GetSessionRepo(deps.db)

	folderService := &usecase.FolderService{}
	noteService := &usecase.NoteService{}
	flashcardService := &usecase.FlashcardService{Generator: deps.generator}

	resolver := &middleware.BackendResolver{
		DB:        deps.db,
		Retry:     deps.retry,
		Local:     deps.local,
		Blacklist: deps.blacklist,
		Sessions:  sessionRepo,
	}
	if deps.cache != nil {
		resolver.Cache = deps.cache
	}

	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestSizeLimiter(deps.serverCfg.MaxRequestBytes))
	router.Use(middleware.MetricsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	loginDeps := handler.LoginDeps{
		Users:           userRepo,
		Sessions:        sessionRepo,
		Cache:           deps.cache,
		SessionDuration: deps.serverCfg.SessionDuration,
	}
	logoutDeps := handler.LogoutDeps{
		Sessions:  sessionRepo,
		Cache:     deps.cache,
		Blacklist: deps.blacklist,
	}
	accountDeps := handler.AccountDeps{
		Users:     userRepo,
		Sessions:  sessionRepo,
		Cache:     deps.cache,
		Blacklist: deps.blacklist,
	}

	// Account routes sit outside the backend resolver: they always talk to
	// the remote store regardless of session mode.
	auth := router.Group("/api/auth")
	{
		auth.POST("/register", func(c *gin.Context) {
			handler.RegistrationHandler(c, userRepo)
		})
		auth.POST("/login", func(c *gin.Context) {
			handler.LoginHandler(c, loginDeps)
		})
		auth.POST("/refresh", handler.RefreshHandler)
	}

	// Everything below is served by whichever backend the resolver picks:
	// the remote store for bearer-token requests, the embedded local store
	// for guests.
	api := router.Group("/api")
	api.Use(resolver.Middleware())
	{
		folders := api.Group("/folders")
		{
			folders.GET("/", func(c *gin.Context) {
				handler.ListFoldersHandler(c, folderService)
			})
			folders.POST("/", func(c *gin.Context) {
				handler.CreateFolderHandler(c, folderService)
			})
			folders.PUT("/:id", func(c *gin.Context) {
				handler.RenameFolderHandler(c, folderService)
			})
			folders.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteFolderHandler(c, folderService)
			})
			folders.GET("/:id/notes", handler.ListFolderNotesHandler)
		}

		notes := api.Group("/notes")
		{
			notes.GET("/", handler.ListNotesHandler)
			notes.GET("/search", handler.SearchNotesHandler)
			notes.GET("/:id", handler.GetNoteHandler)
			notes.POST("/", func(c *gin.Context) {
				handler.CreateNoteHandler(c, noteService)
			})
			notes.PUT("/:id", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, noteService)
			})
			notes.DELETE("/:id", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, noteService)
			})
			notes.PUT("/:id/content", func(c *gin.Context) {
				handler.SaveNoteContentHandler(c, noteService)
			})
			notes.PUT("/:id/priority", func(c *gin.Context) {
				handler.SetNotePriorityHandler(c, noteService)
			})
			notes.POST("/:id/reviewed", func(c *gin.Context) {
				handler.MarkNoteReviewedHandler(c, noteService)
			})

			notes.GET("/:id/flashcards", func(c *gin.Context) {
				handler.ParsedFlashcardsHandler(c, flashcardService)
			})
			notes.POST("/:id/flashcards/generate", func(c *gin.Context) {
				handler.GenerateFlashcardsHandler(c, flashcardService)
			})
		}

		api.GET("/review", func(c *gin.Context) {
			handler.ReviewBoardHandler(c, noteService)
		})

		flashcards := api.Group("/flashcards")
		{
			flashcards.GET("/", handler.ListFlashcardsHandler)
			flashcards.DELETE("/:id", handler.DeleteFlashcardHandler)
		}

		api.POST("/markdown", handler.RenderMarkdownHandler)
		api.GET("/stats", handler.GetStatsHandler)
		api.DELETE("/data", func(c *gin.Context) {
			handler.DeleteAllDataHandler(c, noteService)
		})

		// Session-bound routes only exist for authenticated users.
		protected := api.Group("")
		protected.Use(middleware.RequireAuth())
		{
			protected.POST("/auth/logout", func(c *gin.Context) {
				handler.LogoutHandler(c, logoutDeps)
			})
			protected.POST("/auth/logout-all", func(c *gin.Context) {
				handler.LogoutAllHandler(c, logoutDeps)
			})
			protected.DELETE("/auth/account", func(c *gin.Context) {
				handler.DeleteAccountHandler(c, accountDeps)
			})
			protected.GET("/sessions/active", func(c *gin.Context) {
				handler.GetActiveSessionsHandler(c, sessionRepo)
			})
			protected.GET("/notes/:id/history", handler.NoteHistoryHandler)
			protected.POST("/2fa/enable", func(c *gin.Context) {
				handler.Enable2FAHandler(c, userRepo)
			})
			protected.POST("/2fa/verify", func(c *gin.Context) {
				handler.Verify2FAHandler(c, userRepo)
			})
		}
	}

	return router
}

func main() {
	dbCfg := config.LoadDatabaseConfig()
	localCfg := config.LoadLocalStoreConfig()
	retryCfg := config.LoadRetryConfig()
	generatorCfg := config.LoadGeneratorConfig()
	serverCfg := config.LoadServerConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := utils.ConnectMongo(ctx, dbCfg.URI, dbCfg.MaxPoolSize,
		dbCfg.MinPoolSize, dbCfg.MaxConnIdleTime, dbCfg.RetryWrites)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	db := client.Database(dbCfg.DatabaseName)
	if err := repository.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("Failed to create indexes: %v", err)
	}

	local, err := localstore.Open(localCfg.Path)
	if err != nil {
		log.Fatalf("Failed to open local store: %v", err)
	}

	folderService := &usecase.FolderService{}
	if err := folderService.Bootstrap(ctx, local); err != nil {
		log.Fatalf("Failed to seed local store: %v", err)
	}

	var cache *services.SessionCache
	var blacklist *services.TokenBlacklist
	if serverCfg.RedisURL != "" {
		cache, err = services.NewSessionCache(serverCfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		blacklist = services.NewTokenBlacklist(cache.Client())
	} else {
		log.Println("REDIS_URL not set, session caching and token revocation disabled")
	}

	router := setupRouter(appDeps{
		db:        db,
		local:     local,
		retry: services.RetryPolicy{
			MaxAttempts:     retryCfg.MaxAttempts,
			InitialInterval: retryCfg.InitialInterval,
			MaxInterval:     retryCfg.MaxInterval,
		},
		cache:     cache,
		blacklist: blacklist,
		generator: services.NewGenerator(generatorCfg.Endpoint),
		serverCfg: serverCfg,
	})

	serverAddr := fmt.Sprintf(":%s", serverCfg.Port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
