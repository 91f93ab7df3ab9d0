package entitlekit

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/fernandezvara/dbkit"
)

// ============================================================================
// MEMBERSHIP MANAGEMENT
// ============================================================================

// AddMember creates a membership binding the user to the organization with
// the given role. The organization owns the record; at most one membership
// exists per (user, organization) pair.
//
// The actor from context must hold owner or manager in the organization,
// except when adding themselves (bootstrap of the first owner).
//
// Example:
//
//	membership, err := service.AddMember(ctx, userID, orgID, entitlekit.RoleMember)
func (s *Service) AddMember(ctx context.Context, userID, orgID string, role OrgRole) (*Membership, error) {
	if !role.Valid() {
		return nil, NewError(ErrInvalidRole, "cannot assign unrecognized role").
			WithRole(role).
			WithUser(userID).
			WithOrg(orgID)
	}

	if err := s.authorizeMemberChange(ctx, userID, orgID); err != nil {
		return nil, err
	}

	membership := &Membership{
		UserID:   userID,
		OrgID:    orgID,
		Role:     role,
		JoinedAt: time.Now(),
	}

	result, err := s.db.NewInsert().Model(membership).Exec(ctx)
	err = dbkit.WithErr(result, err, "CreateMembership").Err()
	if err != nil {
		if dbkit.IsDuplicate(err) {
			return nil, NewError(ErrMembershipExists, "user is already a member").
				WithUser(userID).
				WithOrg(orgID)
		}
		return nil, NewError(ErrDatabaseError, "failed to create membership").
			WithUser(userID).
			WithOrg(orgID).
			WithRole(role)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"org_id":  orgID,
		"role":    role,
	}).Info("membership created")

	return membership, nil
}

// ChangeRole updates the user's role in the organization. Only the
// organization's owners and managers may change roles; users do not control
// their own role.
func (s *Service) ChangeRole(ctx context.Context, userID, orgID string, role OrgRole) error {
	if !role.Valid() {
		return NewError(ErrInvalidRole, "cannot assign unrecognized role").
			WithRole(role).
			WithUser(userID).
			WithOrg(orgID)
	}

	if err := s.requireManagingActor(ctx, orgID); err != nil {
		return err
	}

	result, err := s.db.NewUpdate().
		Table("memberships").
		Set("role = ?", role).
		Set("updated_at = current_timestamp").
		Where("user_id = ? AND org_id = ?", userID, orgID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "ChangeMembershipRole").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to change role").
			WithUser(userID).
			WithOrg(orgID).
			WithRole(role)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NewError(ErrMembershipNotFound, "user has no membership to update").
			WithUser(userID).
			WithOrg(orgID)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"org_id":  orgID,
		"role":    role,
	}).Info("membership role changed")

	return nil
}

// RemoveMember destroys the user's membership in the organization. Owners
// and managers may remove anyone; a member may remove themselves (leave).
func (s *Service) RemoveMember(ctx context.Context, userID, orgID string) error {
	if err := s.authorizeMemberChange(ctx, userID, orgID); err != nil {
		return err
	}

	result, err := s.db.NewDelete().
		Table("memberships").
		Where("user_id = ? AND org_id = ?", userID, orgID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "DeleteMembership").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to remove membership").
			WithUser(userID).
			WithOrg(orgID)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NewError(ErrMembershipNotFound, "user has no membership to remove").
			WithUser(userID).
			WithOrg(orgID)
	}

	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"org_id":  orgID,
	}).Info("membership removed")

	return nil
}

// GetMembership returns the user's membership in the organization, or nil
// when the user is not a member.
func (s *Service) GetMembership(ctx context.Context, userID, orgID string) (*Membership, error) {
	return s.memberships.ResolveMembership(ctx, userID, orgID)
}

// ListMembers returns all memberships in an organization.
func (s *Service) ListMembers(ctx context.Context, orgID string) ([]Membership, error) {
	var memberships []Membership
	err := dbkit.WithErr1(s.db.NewSelect().
		Model(&memberships).
		Where("org_id = ?", orgID).
		Order("joined_at ASC").
		Scan(ctx), "ListMembers").Err()
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListUserOrgs returns all of a user's memberships across organizations.
func (s *Service) ListUserOrgs(ctx context.Context, userID string) ([]Membership, error) {
	var memberships []Membership
	err := dbkit.WithErr1(s.db.NewSelect().
		Model(&memberships).
		Where("user_id = ?", userID).
		Order("joined_at ASC").
		Scan(ctx), "ListUserOrgs").Err()
	if err != nil {
		return nil, err
	}
	return memberships, nil
}

// authorizeMemberChange allows the change when the actor is the target user
// themselves; otherwise the actor must hold owner or manager in the org.
func (s *Service) authorizeMemberChange(ctx context.Context, targetUserID, orgID string) error {
	actorID := GetActorID(ctx)
	if actorID == "" {
		return NewError(ErrNoActorID, "actor ID required for membership changes").WithOrg(orgID)
	}
	if actorID == targetUserID {
		return nil
	}
	return s.requireManagingActor(ctx, orgID)
}

// requireManagingActor checks the context actor holds owner or manager.
func (s *Service) requireManagingActor(ctx context.Context, orgID string) error {
	actorID := GetActorID(ctx)
	if actorID == "" {
		return NewError(ErrNoActorID, "actor ID required for membership changes").WithOrg(orgID)
	}

	_, denial, err := s.RequireRole(ctx, actorID, orgID, RoleOwner, RoleManager)
	if err != nil {
		return err
	}
	if denial != nil {
		return denial.Err()
	}
	return nil
}

// ============================================================================
// ORGANIZATIONS
// ============================================================================

// CreateOrganization creates an organization record with the given tier.
func (s *Service) CreateOrganization(ctx context.Context, name string, tier SubscriptionTier) (*Organization, error) {
	if tier != "" && !tier.Valid() {
		return nil, NewError(ErrInvalidTier, "cannot create organization with unrecognized tier")
	}

	org := &Organization{
		Name:             name,
		SubscriptionTier: tier,
	}

	result, err := s.db.NewInsert().Model(org).Returning("id").Exec(ctx)
	err = dbkit.WithErr(result, err, "CreateOrganization").Err()
	if err != nil {
		return nil, NewError(ErrDatabaseError, "failed to create organization")
	}

	return org, nil
}

// SetTier updates an organization's subscription tier. Tier changes take
// effect on the next access check; the engine reads the tier fresh on every
// decision.
func (s *Service) SetTier(ctx context.Context, orgID string, tier SubscriptionTier) error {
	if !tier.Valid() {
		return NewError(ErrInvalidTier, "cannot set unrecognized tier").WithOrg(orgID)
	}

	result, err := s.db.NewUpdate().
		Table("organizations").
		Set("subscription_tier = ?", tier).
		Set("updated_at = current_timestamp").
		Where("id = ?", orgID).
		Exec(ctx)
	err = dbkit.WithErr(result, err, "SetSubscriptionTier").Err()
	if err != nil {
		return NewError(ErrDatabaseError, "failed to set subscription tier").WithOrg(orgID)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return NewError(ErrOrganizationNotFound, "no organization to update").WithOrg(orgID)
	}

	s.log.WithFields(logrus.Fields{
		"org_id": orgID,
		"tier":   tier,
	}).Info("subscription tier changed")

	return nil
}
