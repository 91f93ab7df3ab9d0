package entitlekit

import (
	"github.com/fernandezvara/dbkit"
)

// Migrations returns all database migrations required for EntitleKit.
// Use db.Migrate(ctx, service.Migrations()) to run migrations.
func (s *Service) Migrations() []dbkit.Migration {
	return []dbkit.Migration{
		{
			ID:          "entitlekit-001",
			Description: "Create organizations table",
			SQL: `
                CREATE TABLE IF NOT EXISTS organizations (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    name TEXT NOT NULL,
                    subscription_tier TEXT,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "entitlekit-002",
			Description: "Create memberships table",
			SQL: `
                CREATE TABLE IF NOT EXISTS memberships (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    user_id TEXT NOT NULL,
                    org_id TEXT NOT NULL,
                    role TEXT NOT NULL,
                    joined_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    created_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    updated_at TIMESTAMPTZ NOT NULL DEFAULT current_timestamp,
                    CONSTRAINT memberships_user_org_key UNIQUE (user_id, org_id)
                )`,
		},
		{
			ID:          "entitlekit-003",
			Description: "Create access_log table",
			SQL: `
                CREATE TABLE IF NOT EXISTS access_log (
                    id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
                    user_id TEXT NOT NULL,
                    org_id TEXT NOT NULL,
                    feature_key TEXT NOT NULL,
                    granted BOOLEAN NOT NULL,
                    reason TEXT,
                    timestamp TIMESTAMPTZ NOT NULL DEFAULT current_timestamp
                )`,
		},
		{
			ID:          "entitlekit-004",
			Description: "Index access_log for org-scoped queries",
			SQL: `
                CREATE INDEX IF NOT EXISTS access_log_org_ts_idx
                    ON access_log (org_id, timestamp DESC)`,
		},
	}
}
