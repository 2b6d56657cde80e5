package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "sitehost/internal/auth/http"
	"sitehost/internal/auth/service"
	"sitehost/internal/common/clock"
	"sitehost/internal/common/config"
	commoncrypto "sitehost/internal/common/crypto"
	commonhttp "sitehost/internal/common/http"
	"sitehost/internal/common/logger"
	srv "sitehost/internal/common/server"
	sitehttp "sitehost/internal/site/http"
	userrepo "sitehost/internal/user/repository"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "sitehost", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	repo := userrepo.NewFileRepository(cfg.UsersFile)
	hasher := &commoncrypto.BcryptHasher{}
	idGenerator := commoncrypto.NewUUIDGenerator()
	clk := clock.NewRealClock()
	issuer := service.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL, clk)
	authService := service.NewAuthService(repo, hasher, idGenerator, issuer, clk, log)

	authHandler := authhttp.NewHandler(authService, cfg.JWTSecret, log)
	staticHandler := sitehttp.NewHandler(cfg.StaticDir, log)

	mux := http.NewServeMux()
	mux.Handle("/api/", commonhttp.WithTimeout(cfg.RequestTimeout)(authHandler))
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", staticHandler)

	finalHandler := commonhttp.BuildBaseHandler(log, mux)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	srv.StartWithGracefulShutdown(server, log, "sitehost")
}
