package models

type SearchMetadata struct {
	TotalResults       int      `json:"total_results"`
	ProvidersQueried   int      `json:"providers_queried"`
	ProvidersSucceeded int      `json:"providers_succeeded"`
	ProvidersFailed    int      `json:"providers_failed"`
	FailedProviders    []string `json:"failed_providers,omitempty"`
	SearchTimeMs       int64    `json:"search_time_ms"`
	CacheHit           bool     `json:"cache_hit"`
}

type SearchCriteria struct {
	Query   string         `json:"query"`
	Filters *SearchFilters `json:"filters,omitempty"`
}

type SearchResponse struct {
	SearchCriteria SearchCriteria `json:"search_criteria"`
	Metadata       SearchMetadata `json:"metadata"`
	Tours          []Tour         `json:"tours"`
}

type ToursResponse struct {
	Total int    `json:"total"`
	Tours []Tour `json:"tours"`
}

type BookingsResponse struct {
	Tab      string    `json:"tab"`
	Total    int       `json:"total"`
	Bookings []Booking `json:"bookings"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Reason  string `json:"reason,omitempty"`
}

// CachedSearch is one search result as the cache stores it. Only complete
// catalogs are cached, so no provider failures are recorded.
type CachedSearch struct {
	Tours              []Tour `json:"tours"`
	ProvidersQueried   int    `json:"providers_queried"`
	ProvidersSucceeded int    `json:"providers_succeeded"`
}
