package entitlekit

import (
	"context"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ============================================================================
// ENTITLEMENT CHECKS
// ============================================================================

// RequireRole checks that the user holds one of the allowed roles in the
// organization. The allowed roles are an explicit allow-list, tested by set
// membership rather than rank: some operations are restricted to
// non-adjacent roles, so "owner or manager" can exclude "member" even though
// member outranks viewer.
//
// On success it returns the resolved Membership so callers can use the role
// downstream without a second lookup. A nil Membership with a non-nil Denial
// is a refused check; the caller translates the Denial into a transport
// response (401 for unauthenticated, 403 otherwise). The error return is
// reserved for resolver failures.
//
// Example:
//
//	membership, denial, err := service.RequireRole(ctx, userID, orgID,
//	    entitlekit.RoleOwner, entitlekit.RoleManager)
func (s *Service) RequireRole(ctx context.Context, userID, orgID string, allowed ...OrgRole) (*Membership, *Denial, error) {
	if userID == "" {
		return nil, &Denial{
			Kind:          DenialUnauthenticated,
			OrgID:         orgID,
			RequiredRoles: allowed,
		}, nil
	}

	membership, err := s.memberships.ResolveMembership(ctx, userID, orgID)
	if err != nil {
		return nil, nil, err
	}
	if membership == nil {
		return nil, &Denial{
			Kind:          DenialNotAMember,
			UserID:        userID,
			OrgID:         orgID,
			RequiredRoles: allowed,
		}, nil
	}

	for _, role := range allowed {
		if membership.Role == role {
			return membership, nil, nil
		}
	}

	return nil, &Denial{
		Kind:          DenialInsufficientRole,
		UserID:        userID,
		OrgID:         orgID,
		RequiredRoles: allowed,
		ActualRole:    membership.Role,
	}, nil
}

// HasMinimumRole checks that the user's role in the organization ranks at or
// above the minimum. This is the threshold form, for hierarchical checks
// like "manager or above", as opposed to RequireRole's explicit-set form.
// A user with no membership ranks below every minimum.
func (s *Service) HasMinimumRole(ctx context.Context, orgID, userID string, minimum OrgRole) (bool, error) {
	if userID == "" {
		return false, nil
	}

	membership, err := s.memberships.ResolveMembership(ctx, userID, orgID)
	if err != nil {
		return false, err
	}
	if membership == nil {
		return false, nil
	}

	return membership.Role.AtLeast(minimum), nil
}

// CheckFeatureAccess decides whether the user may invoke the feature in the
// organization. A grant requires both the role rank and the tier rank to
// meet the feature rule's minimums; either dimension failing denies, and the
// decision reports which one so the caller can present an upgrade prompt
// versus a permission-request prompt.
//
// Membership and tier are resolved concurrently; there is no data dependency
// between them. If either resolver fails, or the request context is
// cancelled mid-flight, the check returns a zero decision and an error: an
// ambiguous outcome never resolves to granted or denied.
//
// Every decision is recorded through the audit sink best-effort; a sink
// failure never changes the returned decision.
func (s *Service) CheckFeatureAccess(ctx context.Context, userID, orgID, featureKey string) (AccessDecision, error) {
	rule, ok := s.registry.Lookup(featureKey)
	if !ok {
		// Likely a deploy mismatch between caller and registry.
		s.log.WithFields(logrus.Fields{
			"feature": featureKey,
			"org_id":  orgID,
		}).Warn("access check for unregistered feature")

		decision := AccessDecision{FeatureKey: featureKey, Reason: ReasonUnknownFeature}
		s.recordDecision(ctx, userID, orgID, decision)
		return decision, nil
	}

	if userID == "" {
		decision := AccessDecision{
			FeatureKey:   featureKey,
			Reason:       ReasonUnauthenticated,
			RequiredRole: rule.MinRole,
			RequiredTier: rule.MinTier,
		}
		s.recordDecision(ctx, userID, orgID, decision)
		return decision, nil
	}

	membership, tier, err := s.resolveBoth(ctx, userID, orgID)
	if err != nil {
		return AccessDecision{}, err
	}

	decision := evaluateRule(rule, membership, tier)
	s.recordDecision(ctx, userID, orgID, decision)
	return decision, nil
}

// GetUserFeatures returns the set of feature keys the user may invoke in the
// organization. It is a derived view over the full registry, computed from a
// single membership and tier resolution, and is consistent with repeated
// individual CheckFeatureAccess calls.
func (s *Service) GetUserFeatures(ctx context.Context, userID, orgID string) (FeatureSet, error) {
	if userID == "" {
		return NewFeatureSet(), nil
	}

	membership, tier, err := s.resolveBoth(ctx, userID, orgID)
	if err != nil {
		return FeatureSet{}, err
	}

	features := NewFeatureSet()
	for _, rule := range s.registry.Rules() {
		if evaluateRule(rule, membership, tier).Granted {
			features.add(rule.Key)
		}
	}
	return features, nil
}

// resolveBoth resolves membership and tier concurrently.
func (s *Service) resolveBoth(ctx context.Context, userID, orgID string) (*Membership, SubscriptionTier, error) {
	var (
		membership *Membership
		tier       SubscriptionTier
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		membership, err = s.memberships.ResolveMembership(gctx, userID, orgID)
		return err
	})
	g.Go(func() error {
		var err error
		tier, err = s.tiers.ResolveTier(gctx, orgID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	return membership, tier, nil
}

// evaluateRule computes one access decision. Entitlement is the intersection
// of role sufficiency and tier sufficiency: a manager on the free tier does
// not receive a business-only feature, and an owner on a low tier is denied
// until the organization upgrades.
func evaluateRule(rule FeatureRule, membership *Membership, tier SubscriptionTier) AccessDecision {
	decision := AccessDecision{
		FeatureKey:   rule.Key,
		RequiredRole: rule.MinRole,
		RequiredTier: rule.MinTier,
		ActualTier:   tier,
	}

	if membership == nil {
		decision.Reason = ReasonNotAMember
		return decision
	}
	decision.ActualRole = membership.Role

	roleOK := membership.Role.AtLeast(rule.MinRole)
	tierOK := tier.AtLeast(rule.MinTier)

	switch {
	case roleOK && tierOK:
		decision.Granted = true
	case !roleOK:
		decision.Reason = ReasonInsufficientRole
	default:
		// Role is sufficient; tier is the blocking dimension.
		decision.Reason = ReasonInsufficientTier
		decision.UpgradeRequired = rule.MinTier
	}

	return decision
}
