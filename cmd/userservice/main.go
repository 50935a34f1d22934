package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/eNoodles/user-service/internal/auth/http"
	authservice "github.com/eNoodles/user-service/internal/auth/service"
	"github.com/eNoodles/user-service/internal/common/clock"
	"github.com/eNoodles/user-service/internal/common/config"
	commoncrypto "github.com/eNoodles/user-service/internal/common/crypto"
	"github.com/eNoodles/user-service/internal/common/db"
	commonhttp "github.com/eNoodles/user-service/internal/common/http"
	"github.com/eNoodles/user-service/internal/common/logger"
	commonredis "github.com/eNoodles/user-service/internal/common/redis"
	srv "github.com/eNoodles/user-service/internal/common/server"
	"github.com/eNoodles/user-service/internal/session"
	userhttp "github.com/eNoodles/user-service/internal/user/http"
	userrepo "github.com/eNoodles/user-service/internal/user/repository"
	userservice "github.com/eNoodles/user-service/internal/user/service"
)

func main() {
	log, err := logger.New(os.Getenv("LOG_DIR"), "user-service", os.Getenv("LOG_LEVEL"))
	if err != nil {
		os.Stderr.WriteString(fmt.Sprintf("failed to initialize logger: %v\n", err))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pool := db.NewPool(log, cfg.DatabaseURL)
	defer pool.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store session.Store
	if cfg.RedisAddr != "" {
		client, err := commonredis.New(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			log.Fatalf("failed to connect to redis at %s: %v (is redis running?)", cfg.RedisAddr, err)
		}
		store = session.NewRedisStore(client)
		log.Infof("session store: redis at %s, ttl=%v", cfg.RedisAddr, cfg.SessionTTL)
	} else {
		store = session.NewMemoryStore(ctx, clock.NewRealClock(), log)
		log.Infof("session store: in-memory, ttl=%v", cfg.SessionTTL)
	}

	idGenerator := commoncrypto.NewUUIDGenerator()
	directory := session.NewDirectory(store, idGenerator, cfg.SessionTTL, log)

	repo := userrepo.NewPgRepository(pool)
	users := userservice.NewUserService(repo, idGenerator, clock.NewRealClock(), log)
	auth := authservice.NewAuthService(repo, directory, log)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/login", authhttp.NewHandler(auth, log))
	mux.Handle("/api/v1/users/", userhttp.NewHandler(users, directory, log))
	mux.HandleFunc("/health", commonhttp.HealthHandler(log))
	mux.Handle("/metrics", promhttp.Handler())

	rateLimiter := commonhttp.NewStrictRateLimiter()
	timeout := commonhttp.RequestTimeoutMiddleware(cfg.RequestTimeout)
	baseHandler := commonhttp.BuildBaseHandler(log, timeout(mux))

	rateLimitMiddleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if path == "/health" || path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}
			rateLimiter.Middleware(next).ServeHTTP(w, r)
		})
	}

	finalHandler := rateLimitMiddleware(baseHandler)

	serverConfig := srv.DefaultServerConfig(cfg.HTTPPort)
	server := srv.NewServer(serverConfig, finalHandler)

	shutdownHooks := []srv.ShutdownHook{
		func(ctx context.Context) error {
			cancel()
			return store.Close()
		},
	}

	srv.StartWithGracefulShutdown(server, log, "user-service", shutdownHooks)
}
