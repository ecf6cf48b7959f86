package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"contesthub/config"
	"contesthub/controllers"
	"contesthub/db"
	"contesthub/logger"
	"contesthub/middlewares"
	"contesthub/routes"
	"contesthub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.LoadConfig(config.Path())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()
	sugar := zl.Sugar()

	store, closeStore, err := openStore(cfg, sugar)
	if err != nil {
		sugar.Fatalf("Failed to open store: %v", err)
	}
	defer closeStore()

	if cfg.Database.Seed {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		if err := utils.PopulateDemoData(ctx, store); err != nil {
			sugar.Errorf("Failed to seed demo data: %v", err)
		}
		cancel()
	}

	deps := routes.Dependencies{
		Store:  store,
		Issuer: utils.NewTokenIssuer(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour),
		Log:    sugar,
	}
	sugar.Infof("Session tokens expire after %s", deps.Issuer.Expiry())
	if cfg.RBAC.Enabled {
		enforcer, err := middlewares.NewEnforcer(cfg.RBAC, cfg.Database.URI, sugar)
		if err != nil {
			sugar.Fatalf("Failed to initialize RBAC: %v", err)
		}
		deps.Role = func(resource, action string) gin.HandlerFunc {
			return middlewares.RBACMiddleware(enforcer, store, sugar, resource, action)
		}
		sugar.Info("RBAC enabled for admin views")
	}

	router := setupRouter(cfg, zl, deps)
	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: router,
	}

	go func() {
		sugar.Infof("Server is running on port %d", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	sugar.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sugar.Errorf("Server shutdown failed: %v", err)
	}
}

// openStore connects the configured store and returns its close function
func openStore(cfg *config.Config, log *zap.SugaredLogger) (db.Store, func(), error) {
	if cfg.Database.Driver == config.DriverMemory {
		log.Warn("Using in-memory store; data is lost on restart")
		return db.NewMemoryStore(), func() {}, nil
	}

	client, database, err := db.ConnectMongoDB(context.Background(), cfg.Database.URI, cfg.Database.Name)
	if err != nil {
		return nil, nil, err
	}
	log.Infof("Connected to MongoDB, using database: %s", database.Name())

	store := db.NewMongoStore(database, db.Collections{
		Users:       cfg.Database.Collections.Users,
		Contests:    cfg.Database.Collections.Contests,
		Submissions: cfg.Database.Collections.Submissions,
	})
	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			log.Errorf("Failed to disconnect from MongoDB: %v", err)
		}
	}
	return store, closeFn, nil
}

func setupRouter(cfg *config.Config, zl *zap.Logger, deps routes.Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(middlewares.RequestID(), middlewares.AccessLog(zl), middlewares.Recovery(zl))

	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		deps.Log.Warnf("Invalid trusted proxies %v: %v", cfg.Server.TrustedProxies, err)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middlewares.RequestIDHeader, controllers.TotalCountHeader},
		AllowCredentials: true,
	}))

	routes.Register(router, deps)
	return router
}
