package main

import (
	"log"
	"net/http"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"gonotes/config"
	"gonotes/db"
)

func newStore(secret string) *sessions.CookieStore {
	s := sessions.NewCookieStore([]byte(secret))
	s.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
	}
	return s
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var logger *zap.Logger
	if cfg.Development() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		log.Fatalf("create logger: %v", err)
	}
	defer logger.Sync()

	gdb, err := db.Connect(cfg.DatabasePath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}

	store := newStore(cfg.SecretKey)
	router := setupRouter(gdb, store, logger, cfg.TemplatesDir)

	logger.Info("listening", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
