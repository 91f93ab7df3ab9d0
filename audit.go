package entitlekit

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fernandezvara/dbkit"
)

// AuditSink records access decisions. Implementations are best-effort: the
// engine calls Record fire-and-forget and only ever logs a returned error,
// so a sink failure can never change or block a decision.
type AuditSink interface {
	Record(ctx context.Context, entry AccessLogEntry) error
}

// dbAuditSink appends access log entries to the access_log table.
type dbAuditSink struct {
	db dbkit.IDB
}

// NewDBAuditSink creates an AuditSink backed by the database.
func NewDBAuditSink(db dbkit.IDB) AuditSink {
	return &dbAuditSink{db: db}
}

// Record inserts one access log entry.
func (s *dbAuditSink) Record(ctx context.Context, entry AccessLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	result, err := s.db.NewInsert().Model(&entry).Exec(ctx)
	return dbkit.WithErr(result, err, "RecordAccessDecision").Err()
}

// NopAuditSink discards all entries. Useful for tests and for callers that
// do not want decision logging.
type NopAuditSink struct{}

// Record discards the entry.
func (NopAuditSink) Record(context.Context, AccessLogEntry) error {
	return nil
}

// recordDecision writes the decision to the audit sink and bumps metrics.
// Sink failures are logged and swallowed here so they never reach the caller.
func (s *Service) recordDecision(ctx context.Context, userID, orgID string, decision AccessDecision) {
	observeDecision(decision)

	if s.audit == nil {
		return
	}

	entry := AccessLogEntry{
		UserID:     userID,
		OrgID:      orgID,
		FeatureKey: decision.FeatureKey,
		Granted:    decision.Granted,
		Reason:     decision.Reason,
		Timestamp:  time.Now(),
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"org_id":  orgID,
			"feature": decision.FeatureKey,
		}).Warn("access log write failed")
	}
}
