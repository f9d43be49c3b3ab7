package db

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/akarpovich/notes-service/internal/common/constants"
	"github.com/akarpovich/notes-service/internal/observability/metrics"
)

// StartPoolMetrics periodically exports pool statistics as gauges.
func StartPoolMetrics(pool *pgxpool.Pool, interval time.Duration) {
	if interval <= 0 {
		interval = constants.DBPoolMetricsInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			stats := pool.Stat()
			metrics.DBPoolAcquiredConnections.Set(float64(stats.AcquiredConns()))
			metrics.DBPoolIdleConnections.Set(float64(stats.IdleConns()))
			metrics.DBPoolMaxConnections.Set(float64(stats.MaxConns()))
			metrics.DBPoolTotalConnections.Set(float64(stats.TotalConns()))
		}
	}()
}
