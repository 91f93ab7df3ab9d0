package entitlekit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestRegistryNewRegistryBasic validates NewRegistry basics.
func TestRegistryNewRegistryBasic(t *testing.T) {
	r := NewRegistry()
	assert.NotNil(t, r)
	assert.Zero(t, r.Len())
	assert.Empty(t, r.Keys())
}

// TestRegistryFeatureBasic validates feature definition and lookup.
func TestRegistryFeatureBasic(t *testing.T) {
	r := NewRegistry()

	r.Feature("time_tracking").
		MinRole(RoleMember).
		MinTier(TierTeam).
		Label("Time tracking").
		Description("Track time against tasks")

	rule, ok := r.Lookup("time_tracking")
	assert.True(t, ok)
	assert.Equal(t, "time_tracking", rule.Key)
	assert.Equal(t, RoleMember, rule.MinRole)
	assert.Equal(t, TierTeam, rule.MinTier)
	assert.Equal(t, "Time tracking", rule.Label)
}

// TestRegistryUnknownKey validates that lookups for unregistered keys miss.
func TestRegistryUnknownKey(t *testing.T) {
	r := NewRegistry()
	r.Feature("chat").MinRole(RoleViewer).MinTier(TierTeam)

	_, ok := r.Lookup("video_calls")
	assert.False(t, ok)
}

// TestRegistryFluentChaining validates the fluent builder chaining.
func TestRegistryFluentChaining(t *testing.T) {
	r := NewRegistry()

	r.Feature("tasks").MinRole(RoleViewer).MinTier(TierFree).
		Feature("gantt_charts").MinRole(RoleMember).MinTier(TierBusiness).
		Feature("api_access").MinRole(RoleManager).MinTier(TierEnterprise)

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []string{"tasks", "gantt_charts", "api_access"}, r.Keys())
}

// TestRegistryLookupReturnsCopy validates that callers cannot mutate the
// registry through a returned rule.
func TestRegistryLookupReturnsCopy(t *testing.T) {
	r := NewRegistry()
	r.Feature("chat").MinRole(RoleViewer).MinTier(TierTeam)

	rule, ok := r.Lookup("chat")
	assert.True(t, ok)
	rule.MinRole = RoleInvited
	rule.MinTier = TierFree

	again, _ := r.Lookup("chat")
	assert.Equal(t, RoleViewer, again.MinRole)
	assert.Equal(t, TierTeam, again.MinTier)
}

// TestRegistryRulesOrder validates deterministic iteration order.
func TestRegistryRulesOrder(t *testing.T) {
	r := NewRegistry()
	r.Feature("b").MinRole(RoleViewer).MinTier(TierFree).
		Feature("a").MinRole(RoleViewer).MinTier(TierFree).
		Feature("c").MinRole(RoleViewer).MinTier(TierFree)

	rules := r.Rules()
	assert.Len(t, rules, 3)
	assert.Equal(t, "b", rules[0].Key)
	assert.Equal(t, "a", rules[1].Key)
	assert.Equal(t, "c", rules[2].Key)
}

// TestRegistryValidate validates rejection of malformed rules.
func TestRegistryValidate(t *testing.T) {
	r := NewRegistry()
	r.Feature("ok").MinRole(RoleMember).MinTier(TierTeam)
	assert.NoError(t, r.Validate())

	r.Feature("bad_role").MinRole(OrgRole("admin")).MinTier(TierTeam)
	err := r.Validate()
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidFeature)

	r2 := NewRegistry()
	r2.Feature("bad_tier").MinRole(RoleMember).MinTier(SubscriptionTier("pro"))
	assert.Error(t, r2.Validate())

	// Unset minimums are invalid too: a rule without both dimensions set
	// would deny every request for its feature.
	r3 := NewRegistry()
	r3.Feature("unset")
	assert.Error(t, r3.Validate())
}

// TestDefaultRegistry validates the shipped workspace manifest.
func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()

	assert.NoError(t, r.Validate())
	assert.GreaterOrEqual(t, r.Len(), 10)

	tracking, ok := r.Lookup("time_tracking")
	assert.True(t, ok)
	assert.Equal(t, RoleMember, tracking.MinRole)
	assert.Equal(t, TierTeam, tracking.MinTier)

	analytics, ok := r.Lookup("workload_analytics")
	assert.True(t, ok)
	assert.Equal(t, RoleManager, analytics.MinRole)
	assert.Equal(t, TierBusiness, analytics.MinTier)

	export, ok := r.Lookup("audit_log_export")
	assert.True(t, ok)
	assert.Equal(t, RoleOwner, export.MinRole)
	assert.Equal(t, TierEnterprise, export.MinTier)
}
