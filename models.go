package entitlekit

import (
	"sort"
	"time"

	"github.com/uptrace/bun"
)

// Membership binds one user to one organization with exactly one role.
// At most one Membership exists per (user, organization) pair; the
// organization owns the record.
type Membership struct {
	bun.BaseModel `bun:"table:memberships,alias:m"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID    string    `bun:"user_id,notnull"`
	OrgID     string    `bun:"org_id,notnull"`
	Role      OrgRole   `bun:"role,notnull"`
	JoinedAt  time.Time `bun:"joined_at,notnull,default:current_timestamp"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Organization holds the tenant record and its subscription tier.
// An empty subscription_tier column resolves to TierFree.
type Organization struct {
	bun.BaseModel `bun:"table:organizations,alias:o"`

	ID               string           `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	Name             string           `bun:"name,notnull"`
	SubscriptionTier SubscriptionTier `bun:"subscription_tier"`
	CreatedAt        time.Time        `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt        time.Time        `bun:"updated_at,notnull,default:current_timestamp"`
}

// AccessLogEntry records one access decision for observability. Writes are
// best-effort; this table is not a compliance ledger.
type AccessLogEntry struct {
	bun.BaseModel `bun:"table:access_log,alias:al"`

	ID         string    `bun:"id,pk,type:uuid,default:gen_random_uuid()"`
	UserID     string    `bun:"user_id,notnull"`
	OrgID      string    `bun:"org_id,notnull"`
	FeatureKey string    `bun:"feature_key,notnull"`
	Granted    bool      `bun:"granted,notnull"`
	Reason     string    `bun:"reason"`
	Timestamp  time.Time `bun:"timestamp,notnull,default:current_timestamp"`
}

// Denial reason codes for feature access decisions.
const (
	ReasonUnauthenticated  = "unauthenticated"
	ReasonUnknownFeature   = "feature not registered"
	ReasonNotAMember       = "not a member"
	ReasonInsufficientRole = "insufficient role"
	ReasonInsufficientTier = "insufficient tier"
)

// AccessDecision is the outcome of a feature access check. It is never
// persisted as state: every check recomputes it from the current
// membership, tier, and registry.
type AccessDecision struct {
	Granted    bool   `json:"granted"`
	Reason     string `json:"reason,omitempty"`
	FeatureKey string `json:"featureKey"`

	RequiredRole OrgRole `json:"requiredRole,omitempty"`
	ActualRole   OrgRole `json:"actualRole,omitempty"`

	RequiredTier SubscriptionTier `json:"requiredTier,omitempty"`
	ActualTier   SubscriptionTier `json:"actualTier,omitempty"`

	// UpgradeRequired is set only when the subscription tier is the blocking
	// dimension, so callers can present an upgrade prompt rather than a
	// permission-request prompt.
	UpgradeRequired SubscriptionTier `json:"upgradeRequired,omitempty"`
}

// DenialKind classifies why a role requirement was refused.
type DenialKind string

// Denial kinds. Unauthenticated maps to a 401-equivalent at the transport
// layer; the others map to 403.
const (
	DenialUnauthenticated  DenialKind = "unauthenticated"
	DenialNotAMember       DenialKind = "not_a_member"
	DenialInsufficientRole DenialKind = "insufficient_role"
)

// Denial is the negative outcome of a role requirement. It is returned as a
// value, not an error: being refused is an expected, frequent outcome, and
// the calling layer decides how to translate it into a transport response.
type Denial struct {
	Kind          DenialKind `json:"kind"`
	UserID        string     `json:"-"`
	OrgID         string     `json:"-"`
	RequiredRoles []OrgRole  `json:"requiredRoles,omitempty"`
	ActualRole    OrgRole    `json:"yourRole,omitempty"`
}

// Err converts the denial into a sentinel-wrapped error for callers that
// plumb decisions through error returns.
func (d *Denial) Err() error {
	switch d.Kind {
	case DenialUnauthenticated:
		return NewError(ErrUnauthenticated, "no caller identity").WithOrg(d.OrgID)
	case DenialNotAMember:
		return NewError(ErrNotAMember, "no membership in organization").
			WithUser(d.UserID).
			WithOrg(d.OrgID)
	default:
		return NewError(ErrInsufficientRole, "role not in allow-list").
			WithUser(d.UserID).
			WithOrg(d.OrgID).
			WithRole(d.ActualRole)
	}
}

// FeatureSet is the set of feature keys a user may invoke in an organization.
// It is a derived view computed from the registry, never maintained
// independently.
type FeatureSet struct {
	keys map[string]bool
}

// NewFeatureSet creates a FeatureSet from a list of feature keys.
func NewFeatureSet(keys ...string) FeatureSet {
	fs := FeatureSet{keys: make(map[string]bool, len(keys))}
	for _, k := range keys {
		fs.keys[k] = true
	}
	return fs
}

// Has reports whether the set contains the feature key.
func (fs FeatureSet) Has(featureKey string) bool {
	return fs.keys[featureKey]
}

// Keys returns the feature keys in lexical order.
func (fs FeatureSet) Keys() []string {
	keys := make([]string, 0, len(fs.keys))
	for k := range fs.keys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Len returns the number of features in the set.
func (fs FeatureSet) Len() int {
	return len(fs.keys)
}

func (fs *FeatureSet) add(featureKey string) {
	if fs.keys == nil {
		fs.keys = make(map[string]bool)
	}
	fs.keys[featureKey] = true
}
