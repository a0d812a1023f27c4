package errors

// Response is the JSON envelope consumed by the presentation layer. This is
// the sole error contract other layers rely on.
type Response struct {
	Error Body `json:"error"`
}

// Body is the serialized form of a classified error.
type Body struct {
	Code          string         `json:"code"`
	Message       string         `json:"message"`
	Status        int            `json:"status"`
	Details       map[string]any `json:"details"`
	CorrelationID string         `json:"correlation_id"`
}

// ToResponse converts the error into its response envelope, redacting
// sensitive detail fields.
func (e *Error) ToResponse() Response {
	return Response{Error: Body{
		Code:          string(e.Kind),
		Message:       e.Message,
		Status:        e.Status,
		Details:       RedactDetails(e.Details),
		CorrelationID: e.CorrelationID,
	}}
}
