package main

import (
	"context"
	"log"
	"net/http"

	"github.com/rs/cors"

	"personal-diary/api/router"
	"personal-diary/cache"
	"personal-diary/config"
	"personal-diary/db"
	_ "personal-diary/docs" // swag generated package
	"personal-diary/logger"
	"personal-diary/repositories"
	"personal-diary/services"
	"personal-diary/titler"
)

// @title           Personal Diary API
// @version         1.0
// @description     REST API for diary entries with AI-assisted title suggestions
func main() {
	config.InitApp()
	cfg := config.GetConfig()
	logger.Init(cfg.Logging.Level)

	if err := db.Init(context.Background()); err != nil {
		log.Fatal(err)
	}

	var tc *cache.TagCache
	if cfg.Cache.Enabled {
		tc = cache.New(cfg.Cache.RedisAddr, cfg.Cache.RedisDB, cfg.Cache.TTLSeconds)
		if err := tc.Ping(context.Background()); err != nil {
			logger.Log.Warnf("redis unavailable, response cache disabled: %v", err)
			tc = nil
		}
	}

	store := repositories.NewPostRepository(db.Database())
	svc := services.NewPostService(store)
	r := router.New(svc, titler.New(), tc)

	corsMw := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type", "X-Request-Id"},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: corsMw.Handler(r),
	}
	logger.Log.Infof("server listening on :%s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
