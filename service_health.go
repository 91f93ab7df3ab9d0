package entitlekit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Health performs a comprehensive health check of the database connection.
// Returns detailed status including latency, connection pool statistics, and
// error information.
func (s *Service) Health(ctx context.Context) dbkit.HealthStatus {
	if db, ok := s.db.(*dbkit.DBKit); ok {
		return db.Health(ctx)
	}

	// In a transaction or a different IDB implementation, fall back to a ping.
	return dbkit.HealthStatus{
		Healthy: s.IsHealthy(ctx),
		Error:   "Limited health check - not a DBKit instance",
	}
}

// IsHealthy performs a simple health check of the database connection.
// Returns true if the database is reachable, false otherwise.
func (s *Service) IsHealthy(ctx context.Context) bool {
	if db, ok := s.db.(*dbkit.DBKit); ok {
		return db.IsHealthy(ctx)
	}
	return s.Ping(ctx) == nil
}

// Ping performs a basic connectivity test to the database.
func (s *Service) Ping(ctx context.Context) error {
	var result int
	return s.db.NewSelect().Model((*struct{})(nil)).ColumnExpr("1").Limit(1).Scan(ctx, &result)
}

// GetPoolStats returns connection pool statistics for monitoring.
// Returns zero values if the database instance doesn't support pool statistics.
func (s *Service) GetPoolStats() dbkit.PoolStats {
	if db, ok := s.db.(*dbkit.DBKit); ok {
		return dbkit.PoolStatsFromSQL(db.Stats())
	}
	return dbkit.PoolStats{}
}
