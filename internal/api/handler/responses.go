package handler

// errorResponse mirrors the envelope produced by the central error handler.
// It exists here so route annotations can reference the documented shape.
type errorResponse struct {
	Error string `json:"error"`
}
