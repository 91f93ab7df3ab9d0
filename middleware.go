package entitlekit

import (
	"encoding/json"
	"net/http"
)

// Middleware provides HTTP middleware that enforces role and feature
// requirements and translates refusals into transport responses: 401 when no
// identity is present, 403 with a diagnostic JSON body otherwise. The engine
// itself knows nothing about HTTP; this is the calling layer.
type Middleware struct {
	service      *Service
	getUserID    func(*http.Request) string
	errorHandler func(http.ResponseWriter, *http.Request, error)
}

// MiddlewareOption configures the Middleware.
type MiddlewareOption func(*Middleware)

// NewMiddleware creates a new Middleware instance.
//
// Example:
//
//	mw := entitlekit.NewMiddleware(service,
//	    entitlekit.WithUserIDExtractor(func(r *http.Request) string {
//	        return r.Context().Value("user_id").(string)
//	    }),
//	)
func NewMiddleware(service *Service, opts ...MiddlewareOption) *Middleware {
	m := &Middleware{
		service:      service,
		getUserID:    defaultGetUserID,
		errorHandler: defaultErrorHandler,
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// WithUserIDExtractor sets a custom function to extract the user ID from a request.
func WithUserIDExtractor(fn func(*http.Request) string) MiddlewareOption {
	return func(m *Middleware) {
		m.getUserID = fn
	}
}

// WithErrorHandler sets a custom handler for infrastructure errors.
// Denials are always rendered by the middleware itself.
func WithErrorHandler(fn func(http.ResponseWriter, *http.Request, error)) MiddlewareOption {
	return func(m *Middleware) {
		m.errorHandler = fn
	}
}

func defaultGetUserID(r *http.Request) string {
	return GetUserID(r.Context())
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	if IsInvalidRole(err) || IsInvalidTier(err) {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	// Resolver failures and anything else unexpected: never convert an
	// infrastructure failure into an implicit grant or deny.
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// OrgExtractor extracts the organization ID from an HTTP request.
type OrgExtractor func(*http.Request) (string, error)

// OrgFromParam creates an OrgExtractor that reads the organization ID from a
// URL path parameter. Compatible with chi, gorilla/mux, and standard library
// patterns.
//
// Example:
//
//	// For route /orgs/{orgID}/projects
//	mw.RequireRole(entitlekit.OrgFromParam("orgID"), entitlekit.RoleMember)
func OrgFromParam(paramName string) OrgExtractor {
	return func(r *http.Request) (string, error) {
		orgID := r.PathValue(paramName)
		if orgID == "" {
			// Try context (set by router middleware)
			if v := r.Context().Value(paramName); v != nil {
				if s, ok := v.(string); ok {
					orgID = s
				}
			}
		}
		if orgID == "" {
			return "", NewError(ErrOrganizationNotFound, "organization ID not found in request")
		}
		return orgID, nil
	}
}

// OrgFromQuery creates an OrgExtractor that reads the organization ID from a
// query parameter.
func OrgFromQuery(queryParam string) OrgExtractor {
	return func(r *http.Request) (string, error) {
		orgID := r.URL.Query().Get(queryParam)
		if orgID == "" {
			return "", NewError(ErrOrganizationNotFound, "organization ID not found in query")
		}
		return orgID, nil
	}
}

// OrgFromHeader creates an OrgExtractor that reads the organization ID from a header.
//
// Example:
//
//	// For header X-Organization-ID: org_123
//	mw.RequireFeature("time_tracking", entitlekit.OrgFromHeader("X-Organization-ID"))
func OrgFromHeader(headerName string) OrgExtractor {
	return func(r *http.Request) (string, error) {
		orgID := r.Header.Get(headerName)
		if orgID == "" {
			return "", NewError(ErrOrganizationNotFound, "organization ID not found in header")
		}
		return orgID, nil
	}
}

// OrgFromContext creates an OrgExtractor that reads the organization ID set
// by WithOrgID.
func OrgFromContext() OrgExtractor {
	return func(r *http.Request) (string, error) {
		orgID := GetOrgID(r.Context())
		if orgID == "" {
			return "", NewError(ErrOrganizationNotFound, "organization ID not found in context")
		}
		return orgID, nil
	}
}

// denialResponse is the JSON diagnostic body for refused requests.
type denialResponse struct {
	Error           string           `json:"error"`
	Reason          string           `json:"reason,omitempty"`
	RequiredRoles   []OrgRole        `json:"requiredRoles,omitempty"`
	YourRole        OrgRole          `json:"yourRole,omitempty"`
	UpgradeRequired SubscriptionTier `json:"upgradeRequired,omitempty"`
}

func writeDenial(w http.ResponseWriter, denial *Denial) {
	status := http.StatusForbidden
	if denial.Kind == DenialUnauthenticated {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, denialResponse{
		Error:         "access denied",
		Reason:        string(denial.Kind),
		RequiredRoles: denial.RequiredRoles,
		YourRole:      denial.ActualRole,
	})
}

func writeDeniedDecision(w http.ResponseWriter, decision AccessDecision) {
	status := http.StatusForbidden
	if decision.Reason == ReasonUnauthenticated {
		status = http.StatusUnauthorized
	}
	writeJSON(w, status, denialResponse{
		Error:           "access denied",
		Reason:          decision.Reason,
		YourRole:        decision.ActualRole,
		UpgradeRequired: decision.UpgradeRequired,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// RequireRole creates middleware that requires one of the allowed roles in
// the organization identified by the extractor. On success the resolved
// Membership is stored in the request context.
//
// Example:
//
//	router.With(mw.RequireRole(entitlekit.OrgFromParam("orgID"),
//	    entitlekit.RoleOwner, entitlekit.RoleManager)).
//	    Post("/orgs/{orgID}/members", addMemberHandler)
func (m *Middleware) RequireRole(extractor OrgExtractor, allowed ...OrgRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := m.getUserID(r)

			orgID, err := extractor(r)
			if err != nil {
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}

			membership, denial, err := m.service.RequireRole(ctx, userID, orgID, allowed...)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}
			if denial != nil {
				writeDenial(w, denial)
				return
			}

			ctx = WithMembership(ctx, membership)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireMinimumRole creates middleware that requires a role at or above the
// minimum, using threshold semantics rather than an allow-list.
//
// Example:
//
//	router.With(mw.RequireMinimumRole(entitlekit.RoleManager,
//	    entitlekit.OrgFromParam("orgID"))).
//	    Get("/orgs/{orgID}/reports", reportsHandler)
func (m *Middleware) RequireMinimumRole(minimum OrgRole, extractor OrgExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := m.getUserID(r)
			if userID == "" {
				writeDenial(w, &Denial{Kind: DenialUnauthenticated})
				return
			}

			orgID, err := extractor(r)
			if err != nil {
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}

			ok, err := m.service.HasMinimumRole(ctx, orgID, userID, minimum)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}
			if !ok {
				writeDenial(w, &Denial{
					Kind:          DenialInsufficientRole,
					UserID:        userID,
					OrgID:         orgID,
					RequiredRoles: []OrgRole{minimum},
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireFeature creates middleware that requires feature access in the
// organization identified by the extractor. Denied requests carry the
// distinguishing reason, including upgradeRequired when the subscription
// tier is the blocking dimension.
//
// Example:
//
//	router.With(mw.RequireFeature("time_tracking", entitlekit.OrgFromParam("orgID"))).
//	    Post("/orgs/{orgID}/time-entries", createTimeEntryHandler)
func (m *Middleware) RequireFeature(featureKey string, extractor OrgExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			userID := m.getUserID(r)

			orgID, err := extractor(r)
			if err != nil {
				http.Error(w, "Bad Request", http.StatusBadRequest)
				return
			}

			decision, err := m.service.CheckFeatureAccess(ctx, userID, orgID, featureKey)
			if err != nil {
				m.errorHandler(w, r, err)
				return
			}
			if !decision.Granted {
				writeDeniedDecision(w, decision)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// InjectIdentity creates middleware that copies identity headers into the
// context for downstream checks. The user ID extractor result becomes both
// the user and the actor; X-Request-ID is carried for log correlation.
//
// Example:
//
//	router.Use(mw.InjectIdentity())
func (m *Middleware) InjectIdentity() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if userID := m.getUserID(r); userID != "" {
				ctx = WithUserID(ctx, userID)
				ctx = WithActorID(ctx, userID)
			}

			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				ctx = WithRequestID(ctx, requestID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
