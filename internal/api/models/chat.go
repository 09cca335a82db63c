package models

// ChatMessage represents a single entry in a device's transcript.
type ChatMessage struct {
	ID        int64     `json:"id"`
	DeviceID  int64     `json:"deviceId"`
	IsUser    bool      `json:"isUser"`
	Message   string    `json:"message"`
	Timestamp Timestamp `json:"timestamp"`
	ImageURL  *string   `json:"imageUrl,omitempty"`
}

// ChatRequest is the request body for sending a chat message.
type ChatRequest struct {
	Message  string  `json:"message"`
	ImageURL *string `json:"imageUrl,omitempty"`
}

// Validate validates the chat request.
func (r *ChatRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Message == "" {
		errs = append(errs, FieldError{
			Field:   "message",
			Message: "message is required",
			Code:    "REQUIRED",
		})
	}
	if len(r.Message) > 4000 {
		errs = append(errs, FieldError{
			Field:   "message",
			Message: "message must be at most 4000 characters",
			Code:    "TOO_LONG",
		})
	}

	return errs
}

// ChatResponse is returned after a chat turn: the persisted user message and
// the persisted assistant reply.
type ChatResponse struct {
	UserMessage ChatMessage `json:"userMessage"`
	AIMessage   ChatMessage `json:"aiMessage"`
}
