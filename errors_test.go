package entitlekit

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrorWrapping validates sentinel matching through the Error wrapper.
func TestErrorWrapping(t *testing.T) {
	err := NewError(ErrNotAMember, "user has no membership").
		WithUser("user-123").
		WithOrg("org-456")

	assert.True(t, errors.Is(err, ErrNotAMember))
	assert.False(t, errors.Is(err, ErrInsufficientRole))
	assert.Equal(t, "user-123", err.UserID)
	assert.Equal(t, "org-456", err.OrgID)
	assert.Contains(t, err.Error(), "not a member")
	assert.Contains(t, err.Error(), "user has no membership")
}

// TestErrorWithoutMessage validates the bare-sentinel rendering.
func TestErrorWithoutMessage(t *testing.T) {
	err := NewError(ErrUnknownFeature, "")
	assert.Equal(t, ErrUnknownFeature.Error(), err.Error())
}

// TestErrorChaining validates the fluent context setters.
func TestErrorChaining(t *testing.T) {
	err := NewError(ErrInsufficientRole, "allow-list miss").
		WithUser("u1").
		WithOrg("o1").
		WithRole(RoleViewer).
		WithFeature("gantt_charts")

	assert.Equal(t, "u1", err.UserID)
	assert.Equal(t, "o1", err.OrgID)
	assert.Equal(t, RoleViewer, err.Role)
	assert.Equal(t, "gantt_charts", err.FeatureKey)
}

// TestErrorUnwrap validates errors.As and Unwrap through outer wrapping.
func TestErrorUnwrap(t *testing.T) {
	inner := NewError(ErrResolverUnavailable, "dial tcp: refused").WithOrg("o1")
	outer := fmt.Errorf("checking access: %w", inner)

	assert.True(t, errors.Is(outer, ErrResolverUnavailable))

	var e *Error
	assert.True(t, errors.As(outer, &e))
	assert.Equal(t, "o1", e.OrgID)
}

// TestErrorHelpers validates the Is* convenience predicates.
func TestErrorHelpers(t *testing.T) {
	cases := []struct {
		sentinel error
		helper   func(error) bool
	}{
		{ErrUnauthenticated, IsUnauthenticated},
		{ErrNotAMember, IsNotAMember},
		{ErrInsufficientRole, IsInsufficientRole},
		{ErrInsufficientTier, IsInsufficientTier},
		{ErrUnknownFeature, IsUnknownFeature},
		{ErrResolverUnavailable, IsResolverUnavailable},
		{ErrInvalidRole, IsInvalidRole},
		{ErrInvalidTier, IsInvalidTier},
	}

	for _, tc := range cases {
		assert.True(t, tc.helper(tc.sentinel))
		assert.True(t, tc.helper(NewError(tc.sentinel, "wrapped")))
		assert.False(t, tc.helper(errors.New("unrelated")))
		assert.False(t, tc.helper(nil))
	}
}
