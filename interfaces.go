package entitlekit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// Database defines the database operations interface for dependency injection
type Database interface {
	dbkit.IDB
}

// EntitlementChecker defines the decision operations of the engine
type EntitlementChecker interface {
	RequireRole(ctx context.Context, userID, orgID string, allowed ...OrgRole) (*Membership, *Denial, error)
	HasMinimumRole(ctx context.Context, orgID, userID string, minimum OrgRole) (bool, error)
	CheckFeatureAccess(ctx context.Context, userID, orgID, featureKey string) (AccessDecision, error)
	GetUserFeatures(ctx context.Context, userID, orgID string) (FeatureSet, error)
}

// MembershipManager defines the membership lifecycle interface
type MembershipManager interface {
	AddMember(ctx context.Context, userID, orgID string, role OrgRole) (*Membership, error)
	ChangeRole(ctx context.Context, userID, orgID string, role OrgRole) error
	RemoveMember(ctx context.Context, userID, orgID string) error
	GetMembership(ctx context.Context, userID, orgID string) (*Membership, error)
	ListMembers(ctx context.Context, orgID string) ([]Membership, error)
	ListUserOrgs(ctx context.Context, userID string) ([]Membership, error)
}

// HealthMonitor defines the health monitoring interface
type HealthMonitor interface {
	Health(ctx context.Context) dbkit.HealthStatus
	IsHealthy(ctx context.Context) bool
	Ping(ctx context.Context) error
	GetPoolStats() dbkit.PoolStats
}

// AccessLogReader defines the audit query interface
type AccessLogReader interface {
	GetAccessLog(ctx context.Context, filter AccessLogFilter) ([]AccessLogEntry, error)
}
