package entitlekit

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
)

func benchmarkService() *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(DefaultRegistry(), nil,
		WithMembershipResolver(&fakeMembershipResolver{roles: map[string]OrgRole{
			"alice|org1": RoleManager,
		}}),
		WithTierResolver(&fakeTierResolver{tiers: map[string]SubscriptionTier{
			"org1": TierBusiness,
		}}),
		WithAuditSink(NopAuditSink{}),
		WithLogger(log),
	)
}

func BenchmarkCheckFeatureAccess(b *testing.B) {
	svc := benchmarkService()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := svc.CheckFeatureAccess(ctx, "alice", "org1", "workload_analytics")
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkGetUserFeatures(b *testing.B) {
	svc := benchmarkService()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := svc.GetUserFeatures(ctx, "alice", "org1")
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHasMinimumRole(b *testing.B) {
	svc := benchmarkService()
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := svc.HasMinimumRole(ctx, "org1", "alice", RoleMember)
		if err != nil {
			b.Fatal(err)
		}
	}
}
