package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "career_advisor", cfg.Database.Database)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Equal(t, 0.6, cfg.Recommender.ContentWeight)
	assert.Equal(t, 0.4, cfg.Recommender.CollaborativeWeight)
	assert.Equal(t, 3, cfg.Recommender.MinInteractionsForCollab)
	assert.Equal(t, 10, cfg.Recommender.MaxTopK)
	assert.Equal(t, 3, cfg.Recommender.DefaultSimilarK)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RECO_CONTENT_WEIGHT", "0.75")
	t.Setenv("RECO_MIN_INTERACTIONS", "5")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.75, cfg.Recommender.ContentWeight)
	assert.Equal(t, 5, cfg.Recommender.MinInteractionsForCollab)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("RECO_SEMANTIC_WEIGHT", "abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.7, cfg.Recommender.SemanticWeight)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5433, User: "svc", Password: "pw",
		Database: "careers", SSLMode: "require",
	}
	assert.Equal(t,
		"host=db port=5433 user=svc password=pw dbname=careers sslmode=require",
		cfg.DatabaseDSN())
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache", Port: 6380}
	assert.Equal(t, "cache:6380", cfg.RedisAddr())
}
