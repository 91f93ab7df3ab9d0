package entitlekit

import (
	"errors"
	"fmt"
)

// Sentinel errors for EntitleKit operations.
var (
	// ErrUnauthenticated is returned when no caller identity is present at all.
	ErrUnauthenticated = errors.New("entitlekit: unauthenticated")

	// ErrNotAMember is returned when a user has no membership in the target organization.
	ErrNotAMember = errors.New("entitlekit: not a member")

	// ErrInsufficientRole is returned when a membership exists but the role check fails.
	ErrInsufficientRole = errors.New("entitlekit: insufficient role")

	// ErrInsufficientTier is returned when the organization's tier is below a feature's minimum.
	ErrInsufficientTier = errors.New("entitlekit: insufficient subscription tier")

	// ErrUnknownFeature is returned when a feature key is not present in the registry.
	ErrUnknownFeature = errors.New("entitlekit: unknown feature")

	// ErrResolverUnavailable is returned when the membership or organization store
	// could not be reached. Distinct from every decision outcome: it must propagate
	// to the caller rather than resolve to a grant or deny.
	ErrResolverUnavailable = errors.New("entitlekit: resolver unavailable")

	// ErrInvalidRole is returned when a role value is not one of the defined roles.
	ErrInvalidRole = errors.New("entitlekit: invalid role")

	// ErrInvalidTier is returned when a tier value is not one of the defined tiers.
	ErrInvalidTier = errors.New("entitlekit: invalid tier")

	// ErrInvalidFeature is returned when a feature rule is malformed.
	ErrInvalidFeature = errors.New("entitlekit: invalid feature rule")

	// ErrMembershipExists is returned when adding a member who is already a member.
	ErrMembershipExists = errors.New("entitlekit: membership already exists")

	// ErrMembershipNotFound is returned when mutating a membership that does not exist.
	ErrMembershipNotFound = errors.New("entitlekit: membership not found")

	// ErrOrganizationNotFound is returned when an organization record does not exist.
	ErrOrganizationNotFound = errors.New("entitlekit: organization not found")

	// ErrNoActorID is returned when an actor ID is required in context but missing.
	ErrNoActorID = errors.New("entitlekit: no actor ID in context")

	// ErrDatabaseError is returned when a database operation fails.
	ErrDatabaseError = errors.New("entitlekit: database error")
)

// Error wraps a sentinel error with additional context.
type Error struct {
	Err        error   // Underlying sentinel error
	Message    string  // Additional context
	OrgID      string  // Organization involved (if applicable)
	UserID     string  // User involved (if applicable)
	Role       OrgRole // Role involved (if applicable)
	FeatureKey string  // Feature involved (if applicable)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Message)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is checks if the error matches a target error.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewError creates a new Error with context.
func NewError(err error, message string) *Error {
	return &Error{
		Err:     err,
		Message: message,
	}
}

// WithOrg adds organization information to the error.
func (e *Error) WithOrg(orgID string) *Error {
	e.OrgID = orgID
	return e
}

// WithUser adds user information to the error.
func (e *Error) WithUser(userID string) *Error {
	e.UserID = userID
	return e
}

// WithRole adds role information to the error.
func (e *Error) WithRole(role OrgRole) *Error {
	e.Role = role
	return e
}

// WithFeature adds feature information to the error.
func (e *Error) WithFeature(featureKey string) *Error {
	e.FeatureKey = featureKey
	return e
}

// IsUnauthenticated checks if an error means no caller identity was present.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsNotAMember checks if an error is due to a missing membership.
func IsNotAMember(err error) bool {
	return errors.Is(err, ErrNotAMember)
}

// IsInsufficientRole checks if an error is due to an insufficient role.
func IsInsufficientRole(err error) bool {
	return errors.Is(err, ErrInsufficientRole)
}

// IsInsufficientTier checks if an error is due to an insufficient tier.
func IsInsufficientTier(err error) bool {
	return errors.Is(err, ErrInsufficientTier)
}

// IsUnknownFeature checks if an error is due to an unregistered feature key.
func IsUnknownFeature(err error) bool {
	return errors.Is(err, ErrUnknownFeature)
}

// IsResolverUnavailable checks if an error means the backing store was unreachable.
func IsResolverUnavailable(err error) bool {
	return errors.Is(err, ErrResolverUnavailable)
}

// IsInvalidRole checks if an error is due to an unrecognized role value.
func IsInvalidRole(err error) bool {
	return errors.Is(err, ErrInvalidRole)
}

// IsInvalidTier checks if an error is due to an unrecognized tier value.
func IsInvalidTier(err error) bool {
	return errors.Is(err, ErrInvalidTier)
}
