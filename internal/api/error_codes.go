package api

// Error codes carried in the "code" field of error responses.
const (
	ErrorBadRequest        = "BAD_REQUEST"
	ErrorNotFound          = "NOT_FOUND"
	ErrorInternalError     = "INTERNAL_ERROR"
	ErrorInvalidMealPlan   = "INVALID_MEAL_PLAN"
	ErrorUpstream          = "UPSTREAM_ERROR"
	ErrorInvalidCompletion = "INVALID_COMPLETION"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}
