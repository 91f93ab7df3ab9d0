package entitlekit

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNopAuditSink validates that the nop sink accepts anything.
func TestNopAuditSink(t *testing.T) {
	sink := NopAuditSink{}
	err := sink.Record(context.Background(), AccessLogEntry{
		UserID:     "u1",
		OrgID:      "o1",
		FeatureKey: "tasks",
		Granted:    true,
	})
	assert.NoError(t, err)
}

// TestRecordDecisionNilSink validates that a nil sink disables logging
// without panicking.
func TestRecordDecisionNilSink(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewService(testRegistry(), nil,
		WithMembershipResolver(&fakeMembershipResolver{roles: map[string]OrgRole{
			"alice|org1": RoleViewer,
		}}),
		WithTierResolver(&fakeTierResolver{}),
		WithAuditSink(nil),
		WithLogger(log),
	)

	d, err := svc.CheckFeatureAccess(context.Background(), "alice", "org1", "tasks")
	require.NoError(t, err)
	assert.True(t, d.Granted)
}

// TestRecordDecisionFieldsCarried validates that the sink sees the identity
// and outcome of the decision it records.
func TestRecordDecisionFieldsCarried(t *testing.T) {
	sink := &captureSink{}
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	svc := NewService(testRegistry(), nil,
		WithMembershipResolver(&fakeMembershipResolver{}),
		WithTierResolver(&fakeTierResolver{}),
		WithAuditSink(sink),
		WithLogger(log),
	)

	_, err := svc.CheckFeatureAccess(context.Background(), "ghost", "org9", "tasks")
	require.NoError(t, err)

	require.Len(t, sink.entries, 1)
	entry := sink.entries[0]
	assert.Equal(t, "ghost", entry.UserID)
	assert.Equal(t, "org9", entry.OrgID)
	assert.Equal(t, "tasks", entry.FeatureKey)
	assert.False(t, entry.Granted)
	assert.Equal(t, ReasonNotAMember, entry.Reason)
	assert.False(t, entry.Timestamp.IsZero())
}
