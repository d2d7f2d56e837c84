package postgres

import (
	"testing"
	"time"

	"transfer-risk-engine/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "risk",
		Password:        "secret",
		DBName:          "transfers",
		SSLMode:         "disable",
		MaxConns:        20,
		MinConns:        5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

func TestPoolConfig(t *testing.T) {
	poolCfg, err := poolConfig(testDatabaseConfig())
	require.NoError(t, err)

	assert.Equal(t, int32(20), poolCfg.MaxConns)
	assert.Equal(t, int32(5), poolCfg.MinConns)
	assert.Equal(t, 30*time.Minute, poolCfg.MaxConnLifetime)
	assert.Equal(t, "localhost", poolCfg.ConnConfig.Host)
	assert.Equal(t, uint16(5432), poolCfg.ConnConfig.Port)
	assert.Equal(t, "transfers", poolCfg.ConnConfig.Database)
	assert.Equal(t, "transfer-risk-engine", poolCfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_KeepsDriverDefaults(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.MaxConns = 0
	cfg.MinConns = 50
	cfg.ConnMaxLifetime = 0

	poolCfg, err := poolConfig(cfg)
	require.NoError(t, err)

	assert.Greater(t, poolCfg.MaxConns, int32(0))
	assert.LessOrEqual(t, poolCfg.MinConns, poolCfg.MaxConns)
	assert.Equal(t, time.Hour, poolCfg.MaxConnLifetime)
}

func TestPoolConfig_InvalidSSLMode(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.SSLMode = "sometimes"

	_, err := poolConfig(cfg)
	assert.Error(t, err)
}
