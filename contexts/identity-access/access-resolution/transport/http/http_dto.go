package httptransport

// ErrorDetail mirrors the stable denial payload contract: field and code
// are nullable and unset for authorization failures.
type ErrorDetail struct {
	Field   *string `json:"field"`
	Message string  `json:"message"`
	Code    *string `json:"code"`
}

// DenialResponse is the envelope returned for every authorization failure.
// ErrorCode is always "AUTH_ERROR"; Timestamp is ISO-8601 UTC ending in Z.
type DenialResponse struct {
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	ErrorCode string        `json:"error_code"`
	Details   []ErrorDetail `json:"details"`
	Timestamp string        `json:"timestamp"`
}

// NewDenial builds the envelope with the single-detail shape consumers
// depend on.
func NewDenial(message string, timestamp string) DenialResponse {
	return DenialResponse{
		Success:   false,
		Message:   message,
		ErrorCode: "AUTH_ERROR",
		Details:   []ErrorDetail{{Message: message}},
		Timestamp: timestamp,
	}
}
