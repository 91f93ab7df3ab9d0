package entitlekit

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fernandezvara/dbkit"
)

// Service is the entitlement engine. It combines the feature registry, the
// membership and tier resolvers, and the rank model to answer three question
// types: "does this user have at least role X in org Y", "may this user
// invoke feature F in org Y", and "list all features this user may invoke
// in org Y".
//
// Every decision is a pure function of (membership, tier, registry) at call
// time; the service holds no per-request state and no cache. The database is
// only touched through the resolvers, the audit sink, and the membership
// management operations.
//
// Error Handling:
// All four decision outcomes (unauthenticated, not a member, insufficient
// role, insufficient tier) are returned as values, never as errors. The only
// condition that propagates as an error is a resolver failure, wrapped in
// ErrResolverUnavailable, so callers can distinguish "deny because absent"
// from "deny because the system is unavailable".
type Service struct {
	db          dbkit.IDB
	registry    *Registry
	memberships MembershipResolver
	tiers       TierResolver
	audit       AuditSink
	log         logrus.FieldLogger
}

// Option configures a Service.
type Option func(*Service)

// WithMembershipResolver replaces the database-backed membership resolver.
func WithMembershipResolver(r MembershipResolver) Option {
	return func(s *Service) {
		s.memberships = r
	}
}

// WithTierResolver replaces the database-backed tier resolver.
func WithTierResolver(r TierResolver) Option {
	return func(s *Service) {
		s.tiers = r
	}
}

// WithAuditSink replaces the database-backed audit sink.
// Use NopAuditSink to disable decision logging.
func WithAuditSink(sink AuditSink) Option {
	return func(s *Service) {
		s.audit = sink
	}
}

// WithLogger sets the structured logger used for audit-sink failures and
// configuration warnings.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *Service) {
		s.log = log
	}
}

// NewService creates a new EntitleKit service.
//
// Example:
//
//	registry := entitlekit.DefaultRegistry()
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := entitlekit.NewService(registry, db)
func NewService(registry *Registry, db dbkit.IDB, opts ...Option) *Service {
	s := &Service{
		db:          db,
		registry:    registry,
		memberships: NewDBMembershipResolver(db),
		tiers:       NewDBTierResolver(db),
		audit:       NewDBAuditSink(db),
		log:         logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Registry returns the feature registry.
func (s *Service) Registry() *Registry {
	return s.registry
}

// ============================================================================
// ACCESS LOG
// ============================================================================

// GetAccessLog retrieves access log entries with optional filters.
func (s *Service) GetAccessLog(ctx context.Context, filter AccessLogFilter) ([]AccessLogEntry, error) {
	var entries []AccessLogEntry
	q := s.db.NewSelect().Model(&entries)
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}
	if filter.OrgID != "" {
		q = q.Where("org_id = ?", filter.OrgID)
	}
	if filter.FeatureKey != "" {
		q = q.Where("feature_key = ?", filter.FeatureKey)
	}
	if filter.Granted != nil {
		q = q.Where("granted = ?", *filter.Granted)
	}
	if !filter.Since.IsZero() {
		q = q.Where("timestamp >= ?", filter.Since)
	}
	if !filter.Until.IsZero() {
		q = q.Where("timestamp <= ?", filter.Until)
	}

	limit := filter.Limit
	if limit == 0 {
		limit = 100 // Default limit
	}
	q = q.Limit(limit)

	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	q = q.Order("timestamp DESC")
	err := dbkit.WithErr1(q.Scan(ctx), "GetAccessLog").Err()
	if err != nil {
		return nil, err
	}

	return entries, nil
}
