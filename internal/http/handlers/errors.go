// Package handlers defines the HTTP error codes returned by the API.
//
// Every error response carries one of these codes next to a human-readable
// message. Clients branch on the code, not the message.
//
// Example response:
//
//	{
//	  "success": false,
//	  "requestId": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "not_configured",
//	  "error": "Service not properly configured",
//	  "details": "Missing environment variables: REPLICATE_API_TOKEN",
//	  "missingVars": ["REPLICATE_API_TOKEN"]
//	}
package handlers

import "github.com/tbourn/teammate-generator/internal/http/middleware"

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_failed"
	ErrCodeNotFound         = "not_found"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeRateLimited      = middleware.CodeRateLimited
	ErrCodeInternal         = middleware.CodeInternal

	// Domain-specific:
	ErrCodeNotConfigured = "not_configured"
	ErrCodeService       = "service_error"
	ErrCodeUnknownAction = "unknown_action"
)
