package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/iamasit07/5-in-a-row/backend/internal/config"
	"github.com/iamasit07/5-in-a-row/backend/internal/repository/redis"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/analysis"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/bot"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/cleanup"
	"github.com/iamasit07/5-in-a-row/backend/internal/service/game"
	transportHttp "github.com/iamasit07/5-in-a-row/backend/internal/transport/http"
	"github.com/iamasit07/5-in-a-row/backend/internal/transport/websocket"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			log.Info().Msg("No .env file found")
		}
	}

	cfg := config.LoadConfig()
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Analysis cache (optional)
	var cache analysis.Cache
	redisClient := redis.Connect(ctx, cfg)
	if redisClient != nil {
		redisCache := redis.NewRedisCache(redisClient)
		defer redisCache.Close()
		cache = redisCache
	}

	// 2. Services
	sessionManager := game.NewSessionManager(game.Settings{
		BoardSize:   cfg.BoardSize,
		HardDepth:   cfg.SearchDepth,
		TimeBudget:  cfg.TimeBudget,
		AgentPlayer: cfg.AgentPlayer,
	})
	analysisService := analysis.NewService(cache, cfg.AnalysisCacheTTL, min(cfg.SearchDepth, bot.MaxSearchDepth), cfg.TimeBudget)
	connManager := websocket.NewConnectionManager()

	// 3. Handlers
	wsHandler := websocket.NewHandler(connManager, sessionManager, cfg.JWTSecret, cfg.AllowedOrigins)
	sessionManager.OnExpire(wsHandler.NotifyExpired)

	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := transportHttp.NewRouter(
		transportHttp.RouterConfig{
			JWTSecret:      cfg.JWTSecret,
			AllowedOrigins: cfg.AllowedOrigins,
			CacheEnabled:   cache != nil,
		},
		transportHttp.Handlers{
			Auth:      transportHttp.NewAuthHandler(cfg.JWTSecret, cfg.TokenTTL, strings.HasPrefix(cfg.FrontendURL, "https://")),
			Games:     transportHttp.NewGameHandler(sessionManager),
			Analysis:  transportHttp.NewAnalysisHandler(analysisService),
			WebSocket: wsHandler.HandleWebSocket,
		},
		sessionManager,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// 4. Run server and background worker until a signal arrives
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("port", cfg.Port).Int("board_size", cfg.BoardSize).Int("depth", cfg.SearchDepth).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		return cleanup.NewWorker(sessionManager, cfg.CleanupInterval, cfg.SessionIdleTimeout).Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Server is shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal().Err(err).Msg("Server exited with error")
	}
	log.Info().Msg("Server exited gracefully")
}

func setupLogging(cfg *config.Config) {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}
