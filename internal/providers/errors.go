package providers

import "errors"

// Gateway failures, one sentinel per semantically distinct cause. The
// pipeline stores the message and the API layer never retries on its own;
// only rate-limit and server errors are worth a fresh client request.
var (
	ErrMissingAPIKey = errors.New("anthropic API key is not configured")
	ErrUnauthorized  = errors.New("anthropic API key was rejected")
	ErrRateLimited   = errors.New("anthropic API rate limit exceeded, try again later")
	ErrBadRequest    = errors.New("anthropic API rejected the request")
	ErrServerError   = errors.New("anthropic API server error")
	ErrTimeout       = errors.New("anthropic API request timed out")
	ErrEmptyResponse = errors.New("anthropic API returned an empty response")
)
