package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newLazyDB opens a gorm handle without connecting: the sql.DB underneath is
// lazy and Stats() works on it regardless.
func newLazyDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "test:test@tcp(127.0.0.1:3306)/metrics_test?charset=utf8mb4&parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	require.NoError(t, err)

	return db
}

func TestDatabaseMetrics(t *testing.T) {
	m := NewMetrics()

	t.Run("collector samples pool stats into the gauges", func(t *testing.T) {
		db := newLazyDB(t)
		dmc := NewDatabaseMetricsCollector(m, zap.NewNop(), db)

		require.NotNil(t, dmc.sqlDB)
		dmc.collect()

		stats := dmc.sqlDB.Stats()
		assert.Equal(t, float64(stats.InUse), testutil.ToFloat64(m.DBConnectionsInUse))
		assert.Equal(t, float64(stats.Idle), testutil.ToFloat64(m.DBConnectionsIdle))
	})

	t.Run("query metrics count by operation table and status", func(t *testing.T) {
		m.RecordDBQuery("insert", "user_transactions_in", "success", 3*time.Millisecond)
		m.RecordDBQuery("insert", "user_transactions_in", "success", 2*time.Millisecond)
		m.RecordDBQuery("upsert", "isp_wallet", "error", time.Millisecond)

		assert.Equal(t, float64(2),
			testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("insert", "user_transactions_in", "success")))
		assert.Equal(t, float64(1),
			testutil.ToFloat64(m.DBQueriesTotal.WithLabelValues("upsert", "isp_wallet", "error")))
	})

	t.Run("connection errors increment the counter", func(t *testing.T) {
		before := testutil.ToFloat64(m.DBConnectionErrors)

		m.RecordDBConnectionError()

		assert.Equal(t, before+1, testutil.ToFloat64(m.DBConnectionErrors))
	})
}
