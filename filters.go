package entitlekit

import "time"

// AccessLogFilter provides options for filtering access log queries.
type AccessLogFilter struct {
	// Filter by the user whose access was checked
	UserID string

	// Filter by organization
	OrgID string

	// Filter by feature key
	FeatureKey string

	// Filter by outcome; nil matches both granted and denied
	Granted *bool

	// Filter by time range
	Since time.Time
	Until time.Time

	// Pagination
	Limit  int
	Offset int
}

// NewAccessLogFilter creates a new AccessLogFilter with default values.
func NewAccessLogFilter() AccessLogFilter {
	return AccessLogFilter{
		Limit: 100,
	}
}

// WithUser sets the user ID filter.
func (f AccessLogFilter) WithUser(userID string) AccessLogFilter {
	f.UserID = userID
	return f
}

// WithOrg sets the organization ID filter.
func (f AccessLogFilter) WithOrg(orgID string) AccessLogFilter {
	f.OrgID = orgID
	return f
}

// WithFeature sets the feature key filter.
func (f AccessLogFilter) WithFeature(featureKey string) AccessLogFilter {
	f.FeatureKey = featureKey
	return f
}

// WithGranted filters to entries with the given outcome.
func (f AccessLogFilter) WithGranted(granted bool) AccessLogFilter {
	f.Granted = &granted
	return f
}

// WithTimeRange sets the time range filter.
func (f AccessLogFilter) WithTimeRange(since, until time.Time) AccessLogFilter {
	f.Since = since
	f.Until = until
	return f
}

// WithSince sets the start time filter.
func (f AccessLogFilter) WithSince(since time.Time) AccessLogFilter {
	f.Since = since
	return f
}

// WithUntil sets the end time filter.
func (f AccessLogFilter) WithUntil(until time.Time) AccessLogFilter {
	f.Until = until
	return f
}

// WithLimit sets the limit for results.
func (f AccessLogFilter) WithLimit(limit int) AccessLogFilter {
	f.Limit = limit
	return f
}

// WithOffset sets the offset for pagination.
func (f AccessLogFilter) WithOffset(offset int) AccessLogFilter {
	f.Offset = offset
	return f
}

// WithPagination sets both limit and offset.
func (f AccessLogFilter) WithPagination(limit, offset int) AccessLogFilter {
	f.Limit = limit
	f.Offset = offset
	return f
}
