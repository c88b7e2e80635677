package api

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope wraps every response body.
// swagger:model api.Envelope
type Envelope struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message" example:"User retrieved successfully"`
	Data    any    `json:"data,omitempty" swaggertype:"object"`
}

// Success builds a success envelope; data may be nil.
func Success(message string, data any) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: data}
}

// Error builds an error envelope.
func Error(message string) Envelope {
	return Envelope{Status: StatusError, Message: message}
}
