package entitlekit

import (
	"context"

	"github.com/fernandezvara/dbkit"
)

// MembershipResolver looks up a user's membership in an organization.
//
// A nil Membership with a nil error means the user is not a member: a normal,
// expected outcome, not a failure. A non-nil error means the store could not
// be reached and the check cannot complete.
type MembershipResolver interface {
	ResolveMembership(ctx context.Context, userID, orgID string) (*Membership, error)
}

// TierResolver looks up an organization's current subscription tier.
//
// An organization with no explicit tier resolves to TierFree: an unconfigured
// tier must never silently grant elevated access.
type TierResolver interface {
	ResolveTier(ctx context.Context, orgID string) (SubscriptionTier, error)
}

// dbMembershipResolver resolves memberships from the memberships table.
type dbMembershipResolver struct {
	db dbkit.IDB
}

// NewDBMembershipResolver creates a MembershipResolver backed by the database.
func NewDBMembershipResolver(db dbkit.IDB) MembershipResolver {
	return &dbMembershipResolver{db: db}
}

// ResolveMembership performs exactly one lookup, scoped by both user and
// organization so a membership in one tenant can never leak into another.
func (r *dbMembershipResolver) ResolveMembership(ctx context.Context, userID, orgID string) (*Membership, error) {
	var membership Membership
	err := dbkit.WithErr1(r.db.NewSelect().
		Model(&membership).
		Where("user_id = ? AND org_id = ?", userID, orgID).
		Limit(1).
		Scan(ctx), "ResolveMembership").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return nil, nil
		}
		return nil, NewError(ErrResolverUnavailable, err.Error()).
			WithUser(userID).
			WithOrg(orgID)
	}
	return &membership, nil
}

// dbTierResolver resolves subscription tiers from the organizations table.
type dbTierResolver struct {
	db dbkit.IDB
}

// NewDBTierResolver creates a TierResolver backed by the database.
func NewDBTierResolver(db dbkit.IDB) TierResolver {
	return &dbTierResolver{db: db}
}

// ResolveTier returns the organization's tier. A missing organization, an
// empty column, or a value outside the defined tiers all resolve to TierFree.
func (r *dbTierResolver) ResolveTier(ctx context.Context, orgID string) (SubscriptionTier, error) {
	var org Organization
	err := dbkit.WithErr1(r.db.NewSelect().
		Model(&org).
		Column("subscription_tier").
		Where("id = ?", orgID).
		Limit(1).
		Scan(ctx), "ResolveTier").Err()
	if err != nil {
		if dbkit.IsNotFound(err) {
			return TierFree, nil
		}
		return "", NewError(ErrResolverUnavailable, err.Error()).WithOrg(orgID)
	}
	if !org.SubscriptionTier.Valid() {
		return TierFree, nil
	}
	return org.SubscriptionTier, nil
}
