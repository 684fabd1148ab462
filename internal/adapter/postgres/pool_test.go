package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/queue-backend/internal/config"
)

func TestPoolConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DatabaseConfig{
		DSN:             "postgres://u:p@localhost:5432/queue",
		MaxConns:        7,
		MinConns:        2,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: time.Minute,
	}

	poolCfg, err := poolConfig(cfg)
	require.NoError(t, err)
	assert.EqualValues(t, 7, poolCfg.MaxConns)
	assert.EqualValues(t, 2, poolCfg.MinConns)
	assert.Equal(t, time.Hour, poolCfg.MaxConnLifetime)
	assert.Equal(t, time.Minute, poolCfg.MaxConnIdleTime)
	assert.Equal(t, applicationName, poolCfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_KeepsApplicationNameFromDSN(t *testing.T) {
	t.Parallel()

	poolCfg, err := poolConfig(config.DatabaseConfig{
		DSN:      "postgres://u:p@localhost:5432/queue?application_name=migrator",
		MaxConns: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, "migrator", poolCfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_BadDSN(t *testing.T) {
	t.Parallel()

	_, err := poolConfig(config.DatabaseConfig{DSN: "postgres://%zz"})
	assert.ErrorContains(t, err, "parse database DSN")
}
