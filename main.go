package main

import (
	"context"
	"net/http"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"google.golang.org/api/option"

	"github.com/nvbf/league-manager/pkg/auth"
	"github.com/nvbf/league-manager/pkg/config"
	"github.com/nvbf/league-manager/pkg/fixtures"
	"github.com/nvbf/league-manager/pkg/league"
	"github.com/nvbf/league-manager/pkg/logging"
	"github.com/nvbf/league-manager/repos/docstore"
	"github.com/nvbf/league-manager/repos/media"
	"github.com/nvbf/league-manager/repos/memstore"
	resend "github.com/nvbf/league-manager/repos/resend"

	admin "github.com/nvbf/league-manager/services/admin"
	matches "github.com/nvbf/league-manager/services/matches"
	stats "github.com/nvbf/league-manager/services/stats"
	teams "github.com/nvbf/league-manager/services/teams"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logging.New("info", false).Fatal("failed to load config", "error", err)
	}

	log := logging.New(cfg.LogLevel, cfg.IsDevelopment())
	logging.SetDefault(log)
	defer log.Sync()

	for _, w := range cfg.Warnings {
		log.Warn("league config value ignored", "detail", w)
	}

	var opts []option.ClientOption
	if cfg.FirebaseCredentials != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.FirebaseCredentials)))
	}

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.FirebaseProjectID,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		log.Fatal("error initializing app", "error", err)
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatal("failed to initialize Firebase Auth", "error", err)
	}

	var store league.Store
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn("using in-memory store, data is lost on restart")
		store = memstore.New(nil)
	default:
		firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProjectID, opts...)
		if err != nil {
			log.Fatal("failed to create Firestore client", "error", err)
		}
		defer firestoreClient.Close()
		store = docstore.New(firestoreClient, nil)
	}

	if cfg.BootstrapAdminUID != "" {
		if err := store.SetUserRole(ctx, cfg.BootstrapAdminUID, league.RoleAdmin); err != nil {
			log.Fatal("failed to bootstrap admin", "uid", cfg.BootstrapAdminUID, "error", err)
		}
		log.Info("bootstrap admin granted", "uid", cfg.BootstrapAdminUID)
	}

	var teamsUploader teams.Uploader
	var adminUploader admin.Uploader
	if cfg.StorageBucket != "" {
		storageClient, err := firebaseApp.Storage(ctx)
		if err != nil {
			log.Fatal("failed to initialize Firebase Storage", "error", err)
		}
		bucket, err := storageClient.DefaultBucket()
		if err != nil {
			log.Fatal("failed to open storage bucket", "error", err)
		}
		uploader := media.NewService(bucket, cfg.StorageBucket)
		teamsUploader = uploader
		adminUploader = uploader
	} else {
		log.Warn("FIREBASE_STORAGE_BUCKET not set, image uploads disabled")
	}

	var mailer admin.Mailer
	if cfg.ResendKey != "" {
		mailer = resend.NewService(cfg.ResendKey, cfg.MailFrom, cfg.AppURL)
	} else {
		log.Warn("RESEND_KEY not set, invite mails disabled")
	}

	generator := fixtures.New(cfg.Fixtures, clockwork.NewRealClock(), nil)

	teamsService := teams.NewTeamsService(store, teamsUploader)
	matchesService := matches.NewMatchesService(store, generator)
	statsService := stats.NewStatsService(store)
	adminService := admin.NewAdminService(store, mailer, adminUploader)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSHosts
	corsConfig.AllowCredentials = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(log))
	if len(cfg.CORSHosts) > 0 {
		router.Use(cors.New(corsConfig))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authMiddleware := auth.AuthMiddleware(authClient, store)

	teamsRouter := router.Group("/teams/v1")
	teamsRouter.Use(authMiddleware)

	matchesRouter := router.Group("/matches/v1")
	matchesRouter.Use(authMiddleware)

	statsRouter := router.Group("/stats/v1")
	statsRouter.Use(authMiddleware)

	adminRouter := router.Group("/admin/v1")
	adminRouter.Use(authMiddleware)

	teams.NewHTTPHandler(teams.HTTPOptions{
		Service: teamsService,
		Router:  teamsRouter,
	})

	matches.NewHTTPHandler(matches.HTTPOptions{
		Service: matchesService,
		Router:  matchesRouter,
	})

	stats.NewHTTPHandler(stats.HTTPOptions{
		Service: statsService,
		Router:  statsRouter,
	})

	admin.NewHTTPHandler(admin.HTTPOptions{
		Service: adminService,
		Router:  adminRouter,
	})

	log.Info("listening", "port", cfg.Port, "backend", cfg.StoreBackend)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", "error", err)
	}
}
