package config

import (
	"testing"
	"time"

	"github.com/iamasit07/5-in-a-row/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "BOARD_SIZE", "SEARCH_DEPTH", "AGENT_PLAYER", "ALLOWED_ORIGINS", "SEARCH_TIME_BUDGET_MS", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Same(t, AppConfig, cfg)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, domain.DefaultBoardSize, cfg.BoardSize)
	require.Equal(t, 4, cfg.SearchDepth)
	require.Equal(t, domain.Player2, cfg.AgentPlayer)
	require.Equal(t, time.Duration(0), cfg.TimeBudget)
	require.Empty(t, cfg.RedisURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("BOARD_SIZE", "19")
	t.Setenv("SEARCH_DEPTH", "3")
	t.Setenv("SEARCH_TIME_BUDGET_MS", "250")
	t.Setenv("AGENT_PLAYER", "1")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("LOG_PRETTY", "true")

	cfg := LoadConfig()
	require.Equal(t, 19, cfg.BoardSize)
	require.Equal(t, 3, cfg.SearchDepth)
	require.Equal(t, 250*time.Millisecond, cfg.TimeBudget)
	require.Equal(t, domain.Player1, cfg.AgentPlayer)
	require.Contains(t, cfg.AllowedOrigins, "https://a.example")
	require.Contains(t, cfg.AllowedOrigins, "https://b.example")
	require.True(t, cfg.LogPretty)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	t.Setenv("BOARD_SIZE", "3")
	t.Setenv("AGENT_PLAYER", "7")
	t.Setenv("SEARCH_DEPTH", "deep")
	t.Setenv("LOG_PRETTY", "maybe")

	cfg := LoadConfig()
	require.Equal(t, domain.DefaultBoardSize, cfg.BoardSize)
	require.Equal(t, domain.Player2, cfg.AgentPlayer)
	require.Equal(t, 4, cfg.SearchDepth)
	require.False(t, cfg.LogPretty)
}
