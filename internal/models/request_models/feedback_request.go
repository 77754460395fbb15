package request_models

// Presence is checked by the feedback service, not by binding tags, so that each
// failure maps to its own error kind.
type SubmitFeedbackRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
