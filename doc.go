// Package entitlekit provides a role and feature entitlement engine for
// multi-tenant workspace applications.
//
// Nearly every operation in a multi-tenant product must be authorized
// against two independent, hierarchical dimensions: the caller's role within
// an organization, and the organization's subscription tier. EntitleKit
// implements that decision as a small, deterministic core that every server
// action or API route consults before touching data.
//
// # Core Concepts
//
// OrgRole: a member's standing in an organization, drawn from a fixed
// ordered scale: invited < viewer < member < manager < owner.
//
// SubscriptionTier: an organization's subscription level, on an independent
// ordered scale: free < team < business < enterprise.
//
// FeatureRule: a static descriptor mapping a feature key (e.g.
// "time_tracking") to the minimum role AND minimum tier required to invoke
// it. The full set of rules forms the Feature Registry, versioned with the
// deployed code.
//
// Entitlement is the intersection of the two dimensions: a manager on the
// free tier does not get a business-only feature, and a viewer on the
// enterprise tier does not get a manager-only one.
//
// # Key Properties
//
//   - Fail-closed: unknown roles, tiers, and feature keys always deny,
//     never error, never grant
//   - Deterministic: every decision is a pure function of the current
//     membership, tier, and registry; nothing is cached
//   - Distinct refusals: unauthenticated, not-a-member, insufficient role,
//     and insufficient tier carry separate reason codes, so callers can
//     render a 401, a 403, or an upgrade prompt
//   - Best-effort audit: every decision is recorded to an access log whose
//     failures are logged and swallowed, never surfaced
//   - Resolver failures propagate: an unreachable store returns an error,
//     never an implicit grant or deny
//
// # Basic Usage
//
//	// 1. Define the feature manifest (at application startup)
//	registry := entitlekit.NewRegistry()
//	registry.Feature("time_tracking").
//	    MinRole(entitlekit.RoleMember).
//	    MinTier(entitlekit.TierTeam).
//	    Label("Time tracking").
//	    Feature("workload_analytics").
//	    MinRole(entitlekit.RoleManager).
//	    MinTier(entitlekit.TierBusiness).
//	    Label("Workload analytics")
//
//	// ...or use the built-in workspace manifest
//	registry = entitlekit.DefaultRegistry()
//
//	// 2. Create the service
//	db, _ := dbkit.New(dbkit.Config{URL: "postgres://..."})
//	service := entitlekit.NewService(registry, db)
//
//	// 3. Run migrations
//	db.Migrate(ctx, service.Migrations())
//
//	// 4. Check entitlements
//	decision, err := service.CheckFeatureAccess(ctx, userID, orgID, "time_tracking")
//	if err != nil {
//	    // store unreachable; do not treat as denied
//	}
//	if !decision.Granted {
//	    if decision.UpgradeRequired != "" {
//	        // render an upgrade prompt
//	    }
//	    // otherwise render "not permitted"
//	}
//
//	// 5. Guard privileged operations with an explicit allow-list
//	membership, denial, err := service.RequireRole(ctx, userID, orgID,
//	    entitlekit.RoleOwner, entitlekit.RoleManager)
//	if denial != nil {
//	    // 401 for DenialUnauthenticated, 403 otherwise
//	}
//	_ = membership.Role // available without a second lookup
//
// # Middleware Usage
//
//	mw := entitlekit.NewMiddleware(service)
//
//	router.With(mw.RequireRole(entitlekit.OrgFromParam("orgID"),
//	    entitlekit.RoleOwner, entitlekit.RoleManager)).
//	    Post("/orgs/{orgID}/members", addMemberHandler)
//
//	router.With(mw.RequireFeature("time_tracking", entitlekit.OrgFromParam("orgID"))).
//	    Post("/orgs/{orgID}/time-entries", createTimeEntryHandler)
//
// # Allow-list vs Threshold
//
// RequireRole tests set membership against an explicit allow-list per call
// site; HasMinimumRole tests rank against a single minimum. Both are
// intentional, distinct primitives: allow-lists can restrict an operation to
// non-adjacent roles, thresholds express "this role or above".
package entitlekit
