package entitlekit

import (
	"context"
)

// Context keys for EntitleKit values.
type contextKey string

const (
	contextKeyUserID     contextKey = "entitlekit:user_id"
	contextKeyActorID    contextKey = "entitlekit:actor_id"
	contextKeyOrgID      contextKey = "entitlekit:org_id"
	contextKeyRequestID  contextKey = "entitlekit:request_id"
	contextKeyMembership contextKey = "entitlekit:membership"
)

// WithUserID adds a user ID to the context.
// This is the user being checked for entitlements.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, contextKeyUserID, userID)
}

// GetUserID retrieves the user ID from context.
// Returns empty string if not set.
func GetUserID(ctx context.Context) string {
	if v := ctx.Value(contextKeyUserID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithActorID adds an actor ID to the context.
// This is the user performing a membership change. Often the same as the
// user ID, but can be different for administrative actions.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, contextKeyActorID, actorID)
}

// GetActorID retrieves the actor ID from context.
// Falls back to the user ID if an actor ID is not explicitly set.
func GetActorID(ctx context.Context) string {
	if v := ctx.Value(contextKeyActorID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return GetUserID(ctx)
}

// WithOrgID adds an organization ID to the context.
func WithOrgID(ctx context.Context, orgID string) context.Context {
	return context.WithValue(ctx, contextKeyOrgID, orgID)
}

// GetOrgID retrieves the organization ID from context.
func GetOrgID(ctx context.Context) string {
	if v := ctx.Value(contextKeyOrgID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithRequestID adds a request ID to the context for log correlation.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, contextKeyRequestID, requestID)
}

// GetRequestID retrieves the request ID from context.
func GetRequestID(ctx context.Context) string {
	if v := ctx.Value(contextKeyRequestID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// WithMembership adds a resolved Membership to the context.
// This is set by middleware after a successful RequireRole so handlers can
// use the role without a second lookup.
func WithMembership(ctx context.Context, membership *Membership) context.Context {
	return context.WithValue(ctx, contextKeyMembership, membership)
}

// MembershipFromContext retrieves the Membership from context.
// Returns nil if not set.
func MembershipFromContext(ctx context.Context) *Membership {
	if v := ctx.Value(contextKeyMembership); v != nil {
		if m, ok := v.(*Membership); ok {
			return m
		}
	}
	return nil
}
