package entitlekit

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func newMembersService() *Service {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return NewService(testRegistry(), nil,
		WithMembershipResolver(&fakeMembershipResolver{roles: map[string]OrgRole{
			"owner|org1":  RoleOwner,
			"viewer|org1": RoleViewer,
		}}),
		WithTierResolver(&fakeTierResolver{}),
		WithAuditSink(NopAuditSink{}),
		WithLogger(log),
	)
}

// TestAddMemberRejectsInvalidRole validates role validation before any write.
func TestAddMemberRejectsInvalidRole(t *testing.T) {
	svc := newMembersService()
	ctx := WithActorID(context.Background(), "owner")

	_, err := svc.AddMember(ctx, "newbie", "org1", OrgRole("admin"))
	assert.Error(t, err)
	assert.True(t, IsInvalidRole(err))
}

// TestAddMemberRequiresActor validates that membership changes need an actor.
func TestAddMemberRequiresActor(t *testing.T) {
	svc := newMembersService()

	_, err := svc.AddMember(context.Background(), "newbie", "org1", RoleMember)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNoActorID)
}

// TestAddMemberActorMustManage validates that only owners and managers may
// add other users.
func TestAddMemberActorMustManage(t *testing.T) {
	svc := newMembersService()
	ctx := WithActorID(context.Background(), "viewer")

	_, err := svc.AddMember(ctx, "newbie", "org1", RoleMember)
	assert.Error(t, err)
	assert.True(t, IsInsufficientRole(err))

	ctx = WithActorID(context.Background(), "stranger")
	_, err = svc.AddMember(ctx, "newbie", "org1", RoleMember)
	assert.Error(t, err)
	assert.True(t, IsNotAMember(err))
}

// TestChangeRoleRejectsInvalidRole validates role validation.
func TestChangeRoleRejectsInvalidRole(t *testing.T) {
	svc := newMembersService()
	ctx := WithActorID(context.Background(), "owner")

	err := svc.ChangeRole(ctx, "viewer", "org1", OrgRole("root"))
	assert.Error(t, err)
	assert.True(t, IsInvalidRole(err))
}

// TestChangeRoleSelfServiceRefused validates that users cannot manage their
// own role: role changes always require a managing actor, even for self.
func TestChangeRoleSelfServiceRefused(t *testing.T) {
	svc := newMembersService()
	ctx := WithActorID(context.Background(), "viewer")

	err := svc.ChangeRole(ctx, "viewer", "org1", RoleOwner)
	assert.Error(t, err)
	assert.True(t, IsInsufficientRole(err))
}

// TestRemoveMemberRequiresActor validates actor enforcement on removal.
func TestRemoveMemberRequiresActor(t *testing.T) {
	svc := newMembersService()

	err := svc.RemoveMember(context.Background(), "viewer", "org1")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrNoActorID)
}

// TestRemoveMemberActorMustManageOthers validates that removing a different
// user requires owner or manager.
func TestRemoveMemberActorMustManageOthers(t *testing.T) {
	svc := newMembersService()
	ctx := WithActorID(context.Background(), "viewer")

	err := svc.RemoveMember(ctx, "owner", "org1")
	assert.Error(t, err)
	assert.True(t, IsInsufficientRole(err))
}

// TestSetTierRejectsInvalidTier validates tier validation before any write.
func TestSetTierRejectsInvalidTier(t *testing.T) {
	svc := newMembersService()

	err := svc.SetTier(context.Background(), "org1", SubscriptionTier("platinum"))
	assert.Error(t, err)
	assert.True(t, IsInvalidTier(err))
}

// TestCreateOrganizationRejectsInvalidTier validates tier validation.
func TestCreateOrganizationRejectsInvalidTier(t *testing.T) {
	svc := newMembersService()

	_, err := svc.CreateOrganization(context.Background(), "Acme", SubscriptionTier("gold"))
	assert.Error(t, err)
	assert.True(t, IsInvalidTier(err))
}

// TestGetMembershipPassthrough validates the resolver passthrough.
func TestGetMembershipPassthrough(t *testing.T) {
	svc := newMembersService()
	ctx := context.Background()

	m, err := svc.GetMembership(ctx, "owner", "org1")
	assert.NoError(t, err)
	assert.NotNil(t, m)
	assert.Equal(t, RoleOwner, m.Role)

	m, err = svc.GetMembership(ctx, "ghost", "org1")
	assert.NoError(t, err)
	assert.Nil(t, m)
}
