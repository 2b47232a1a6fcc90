package errors

const (
	HttpInternalError       = "internal_error"
	HttpInvalidJsonError    = "invalid_json"
	HttpNotFoundError       = "not_found"
	HttpDuplicateSaleError  = "duplicate_sale"
	HttpUnauthorizedError   = "unauthorized"
	HttpForbiddenError      = "forbidden"
	HttpNoResultsError      = "no_results"
	HttpStoreUnavailable    = "store_unavailable"
	HttpEmptyCartError      = "empty_cart"
	HttpAnalysisFailedError = "analysis_failed"
)

// ErrorResponse is the error response body for all HTTP endpoints.
type ErrorResponse struct {
	ErrorType string      `json:"error_type"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}
