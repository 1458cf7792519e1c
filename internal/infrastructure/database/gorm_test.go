package database

import (
	"testing"

	appconfig "marketplace_escrow/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestConnectGorm(t *testing.T) {
	t.Run("sqlite", func(t *testing.T) {
		db, err := ConnectGorm(appconfig.StoreConfig{Driver: appconfig.StoreSQLite, DSN: ":memory:", MaxOpenConns: 10}, zap.NewNop())
		require.NoError(t, err)
		sqlDB, err := db.DB()
		require.NoError(t, err)
		t.Cleanup(func() { _ = sqlDB.Close() })

		assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
		assert.NoError(t, db.Exec("SELECT 1").Error)
	})

	t.Run("unsupported driver", func(t *testing.T) {
		_, err := ConnectGorm(appconfig.StoreConfig{Driver: appconfig.StoreDynamoDB}, zap.NewNop())
		assert.ErrorContains(t, err, "unsupported relational driver")
	})
}
