package entitlekit

import (
	"fmt"
	"sync"
)

// FeatureRule is a static, read-only descriptor mapping a feature key to the
// minimum role and minimum subscription tier required to invoke it.
type FeatureRule struct {
	Key         string
	MinRole     OrgRole
	MinTier     SubscriptionTier
	Label       string
	Description string
}

// Registry holds all feature rules for the application. It is built once at
// startup, versioned with the deployed code, and treated as immutable after
// initialization. Entitlement decisions are therefore reproducible given only
// the code version, a membership, and a tier.
type Registry struct {
	mu       sync.RWMutex
	features map[string]*FeatureRule
	order    []string // registration order, for deterministic iteration
}

// NewRegistry creates a new feature registry.
func NewRegistry() *Registry {
	return &Registry{
		features: make(map[string]*FeatureRule),
	}
}

// Feature starts defining a new feature rule.
// Returns a FeatureBuilder for fluent configuration.
//
// Example:
//
//	registry.Feature("time_tracking").
//	    MinRole(entitlekit.RoleMember).
//	    MinTier(entitlekit.TierTeam).
//	    Label("Time tracking")
func (r *Registry) Feature(key string) *FeatureBuilder {
	r.mu.Lock()
	defer r.mu.Unlock()

	rule := &FeatureRule{Key: key}
	if _, exists := r.features[key]; !exists {
		r.order = append(r.order, key)
	}
	r.features[key] = rule
	return &FeatureBuilder{rule: rule, registry: r}
}

// Lookup returns the rule for a feature key. The second return value is false
// for unknown keys; an unregistered feature can never be granted by omission.
func (r *Registry) Lookup(key string) (FeatureRule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rule, ok := r.features[key]
	if !ok {
		return FeatureRule{}, false
	}
	return *rule, true
}

// Rules returns all feature rules in registration order.
func (r *Registry) Rules() []FeatureRule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rules := make([]FeatureRule, 0, len(r.order))
	for _, key := range r.order {
		rules = append(rules, *r.features[key])
	}
	return rules
}

// Keys returns all registered feature keys in registration order.
func (r *Registry) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Len returns the number of registered features.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.features)
}

// Validate checks that every rule carries a defined role and tier. Call it
// once after building the registry; a rule that fails validation would
// otherwise deny every request for its feature.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, key := range r.order {
		rule := r.features[key]
		if rule.Key == "" {
			return NewError(ErrInvalidFeature, "feature key cannot be empty")
		}
		if !rule.MinRole.Valid() {
			return NewError(ErrInvalidFeature,
				fmt.Sprintf("feature %q: min role %q not defined", rule.Key, rule.MinRole)).
				WithFeature(rule.Key)
		}
		if !rule.MinTier.Valid() {
			return NewError(ErrInvalidFeature,
				fmt.Sprintf("feature %q: min tier %q not defined", rule.Key, rule.MinTier)).
				WithFeature(rule.Key)
		}
	}
	return nil
}

// FeatureBuilder configures a feature rule fluently.
type FeatureBuilder struct {
	rule     *FeatureRule
	registry *Registry
}

// MinRole sets the minimum organization role required for the feature.
func (b *FeatureBuilder) MinRole(role OrgRole) *FeatureBuilder {
	b.rule.MinRole = role
	return b
}

// MinTier sets the minimum subscription tier required for the feature.
func (b *FeatureBuilder) MinTier(tier SubscriptionTier) *FeatureBuilder {
	b.rule.MinTier = tier
	return b
}

// Label sets the human-readable label for the feature.
func (b *FeatureBuilder) Label(label string) *FeatureBuilder {
	b.rule.Label = label
	return b
}

// Description sets the description for the feature.
func (b *FeatureBuilder) Description(description string) *FeatureBuilder {
	b.rule.Description = description
	return b
}

// Feature continues defining features on the registry (fluent API).
func (b *FeatureBuilder) Feature(key string) *FeatureBuilder {
	return b.registry.Feature(key)
}

// DefaultRegistry returns the feature manifest for the workspace application:
// projects, tasks, meetings, calendar, time tracking, chat, and analytics,
// each gated on a minimum role and subscription tier.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Feature("tasks").
		MinRole(RoleViewer).MinTier(TierFree).
		Label("Tasks").
		Description("View and manage tasks on project boards").
		Feature("projects").
		MinRole(RoleMember).MinTier(TierFree).
		Label("Projects").
		Description("Create and organize projects").
		Feature("meetings").
		MinRole(RoleMember).MinTier(TierFree).
		Label("Meetings").
		Description("Schedule and join meetings").
		Feature("guest_invites").
		MinRole(RoleManager).MinTier(TierFree).
		Label("Guest invites").
		Description("Invite external guests to the organization").
		Feature("chat").
		MinRole(RoleViewer).MinTier(TierTeam).
		Label("Chat").
		Description("Channel and direct messaging").
		Feature("calendar_sync").
		MinRole(RoleMember).MinTier(TierTeam).
		Label("Calendar sync").
		Description("Two-way sync with external calendars").
		Feature("time_tracking").
		MinRole(RoleMember).MinTier(TierTeam).
		Label("Time tracking").
		Description("Track time against tasks and projects").
		Feature("custom_fields").
		MinRole(RoleManager).MinTier(TierTeam).
		Label("Custom fields").
		Description("Define custom task and project fields").
		Feature("gantt_charts").
		MinRole(RoleMember).MinTier(TierBusiness).
		Label("Gantt charts").
		Description("Timeline views with dependencies").
		Feature("meeting_notes_ai").
		MinRole(RoleMember).MinTier(TierBusiness).
		Label("AI meeting notes").
		Description("Automatic meeting summaries and action items").
		Feature("time_reports").
		MinRole(RoleManager).MinTier(TierBusiness).
		Label("Time reports").
		Description("Aggregate and export tracked time").
		Feature("workload_analytics").
		MinRole(RoleManager).MinTier(TierBusiness).
		Label("Workload analytics").
		Description("Team capacity and utilization dashboards").
		Feature("api_access").
		MinRole(RoleManager).MinTier(TierEnterprise).
		Label("API access").
		Description("Organization API tokens and webhooks").
		Feature("audit_log_export").
		MinRole(RoleOwner).MinTier(TierEnterprise).
		Label("Audit log export").
		Description("Export the organization access log")

	return r
}
