package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port           string
	FrontendURL    string
	AllowedOrigins []string

	JWTSecret string
	TokenTTL  time.Duration

	RedisURL         string
	RedisPassword    string
	AnalysisCacheTTL time.Duration

	BoardSize   int
	SearchDepth int
	TimeBudget  time.Duration
	AgentPlayer domain.PlayerID

	SessionIdleTimeout time.Duration
	CleanupInterval    time.Duration

	LogLevel  string
	LogPretty bool
}

var AppConfig *Config

func LoadConfig() *Config {
	port := GetEnv("PORT", "8080")

	// Frontend & CORS
	frontendURL := GetEnv("FRONTEND_URL", "http://localhost:5173")
	allowedOrigins := []string{
		frontendURL,
		"http://localhost:5173", // Local development
	}
	if extras := GetEnv("ALLOWED_ORIGINS", ""); extras != "" {
		for _, origin := range strings.Split(extras, ",") {
			trimmed := strings.TrimSpace(origin)
			if trimmed != "" {
				allowedOrigins = append(allowedOrigins, trimmed)
			}
		}
	}

	// Security
	jwtSecret := GetEnv("JWT_SECRET", "your-secret-key-change-this-in-production")
	tokenTTLMin := GetEnvAsInt("TOKEN_TTL_MINUTES", 24*60)

	// Cache
	redisURL := GetEnv("REDIS_URL", "")
	redisPassword := GetEnv("REDIS_PASSWORD", "")
	cacheTTLMin := GetEnvAsInt("ANALYSIS_CACHE_TTL_MINUTES", 60)

	// Engine
	boardSize := GetEnvAsInt("BOARD_SIZE", domain.DefaultBoardSize)
	if boardSize < domain.MinBoardSize || boardSize > domain.MaxBoardSize {
		log.Warn().Int("size", boardSize).Msgf("[CONFIG] BOARD_SIZE out of range, using default: %d", domain.DefaultBoardSize)
		boardSize = domain.DefaultBoardSize
	}
	searchDepth := GetEnvAsInt("SEARCH_DEPTH", 4)
	timeBudgetMs := GetEnvAsInt("SEARCH_TIME_BUDGET_MS", 0)
	agentPlayer := domain.PlayerID(GetEnvAsInt("AGENT_PLAYER", int(domain.Player2)))
	if !agentPlayer.Valid() {
		log.Warn().Int("player", int(agentPlayer)).Msg("[CONFIG] AGENT_PLAYER must be 1 or 2, using 2")
		agentPlayer = domain.Player2
	}

	// Sessions
	idleMin := GetEnvAsInt("SESSION_IDLE_MINUTES", 30)
	cleanupMin := GetEnvAsInt("CLEANUP_INTERVAL_MINUTES", 5)

	AppConfig = &Config{
		Port:               port,
		FrontendURL:        frontendURL,
		AllowedOrigins:     allowedOrigins,
		JWTSecret:          jwtSecret,
		TokenTTL:           time.Duration(tokenTTLMin) * time.Minute,
		RedisURL:           redisURL,
		RedisPassword:      redisPassword,
		AnalysisCacheTTL:   time.Duration(cacheTTLMin) * time.Minute,
		BoardSize:          boardSize,
		SearchDepth:        searchDepth,
		TimeBudget:         time.Duration(timeBudgetMs) * time.Millisecond,
		AgentPlayer:        agentPlayer,
		SessionIdleTimeout: time.Duration(idleMin) * time.Minute,
		CleanupInterval:    time.Duration(cleanupMin) * time.Minute,
		LogLevel:           GetEnv("LOG_LEVEL", "info"),
		LogPretty:          GetEnvAsBool("LOG_PRETTY", false),
	}

	return AppConfig
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Warn().Msgf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Warn().Msgf("Invalid boolean value for %s: %s, using default: %t", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}
