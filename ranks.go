package entitlekit

// OrgRole is a member's standing within an organization. Roles form a fixed,
// ordered scale; higher rank implies a superset of privileges.
type OrgRole string

// Organization roles, least to most privileged.
const (
	RoleInvited OrgRole = "invited"
	RoleViewer  OrgRole = "viewer"
	RoleMember  OrgRole = "member"
	RoleManager OrgRole = "manager"
	RoleOwner   OrgRole = "owner"
)

// SubscriptionTier is an organization's subscription level. Tiers form a
// fixed, ordered scale independent of roles.
type SubscriptionTier string

// Subscription tiers, least to most privileged.
const (
	TierFree       SubscriptionTier = "free"
	TierTeam       SubscriptionTier = "team"
	TierBusiness   SubscriptionTier = "business"
	TierEnterprise SubscriptionTier = "enterprise"
)

// Rank lookup tables. Values absent from these tables rank as zero, below
// every defined value, so unrecognized data read from storage can never
// satisfy a minimum.
var roleRanks = map[OrgRole]int{
	RoleInvited: 1,
	RoleViewer:  2,
	RoleMember:  3,
	RoleManager: 4,
	RoleOwner:   5,
}

var tierRanks = map[SubscriptionTier]int{
	TierFree:       1,
	TierTeam:       2,
	TierBusiness:   3,
	TierEnterprise: 4,
}

// Rank returns the role's integer rank, or 0 for unrecognized values.
func (r OrgRole) Rank() int {
	return roleRanks[r]
}

// Valid reports whether the role is one of the defined organization roles.
func (r OrgRole) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

// AtLeast reports whether the role is at least as privileged as min.
// Comparisons involving any unrecognized value resolve as insufficient.
func (r OrgRole) AtLeast(min OrgRole) bool {
	rank, minRank := roleRanks[r], roleRanks[min]
	if rank == 0 || minRank == 0 {
		return false
	}
	return rank >= minRank
}

// String returns the role as a string.
func (r OrgRole) String() string {
	return string(r)
}

// Rank returns the tier's integer rank, or 0 for unrecognized values.
func (t SubscriptionTier) Rank() int {
	return tierRanks[t]
}

// Valid reports whether the tier is one of the defined subscription tiers.
func (t SubscriptionTier) Valid() bool {
	_, ok := tierRanks[t]
	return ok
}

// AtLeast reports whether the tier is at least as high as min.
// Comparisons involving any unrecognized value resolve as insufficient.
func (t SubscriptionTier) AtLeast(min SubscriptionTier) bool {
	rank, minRank := tierRanks[t], tierRanks[min]
	if rank == 0 || minRank == 0 {
		return false
	}
	return rank >= minRank
}

// String returns the tier as a string.
func (t SubscriptionTier) String() string {
	return string(t)
}

// HasMinRole reports whether actual meets the min threshold. This is the
// pure, lookup-free form of the threshold check, exposed for UI code that
// already holds a resolved role.
func HasMinRole(actual, min OrgRole) bool {
	return actual.AtLeast(min)
}

// ParseOrgRole validates a free-form string against the defined roles.
// Unrecognized values are rejected at the boundary rather than carried
// into comparisons.
func ParseOrgRole(s string) (OrgRole, error) {
	role := OrgRole(s)
	if !role.Valid() {
		return "", NewError(ErrInvalidRole, "unknown organization role").WithRole(role)
	}
	return role, nil
}

// ParseSubscriptionTier validates a free-form string against the defined tiers.
func ParseSubscriptionTier(s string) (SubscriptionTier, error) {
	tier := SubscriptionTier(s)
	if !tier.Valid() {
		return "", NewError(ErrInvalidTier, "unknown subscription tier")
	}
	return tier, nil
}

// OrgRoles returns all defined roles in rank order, least privileged first.
func OrgRoles() []OrgRole {
	return []OrgRole{RoleInvited, RoleViewer, RoleMember, RoleManager, RoleOwner}
}

// SubscriptionTiers returns all defined tiers in rank order, lowest first.
func SubscriptionTiers() []SubscriptionTier {
	return []SubscriptionTier{TierFree, TierTeam, TierBusiness, TierEnterprise}
}
