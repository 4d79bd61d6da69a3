package models

type HealthResponse struct {
	Status           string `json:"status"`
	Model            string `json:"model"`
	APIKeyConfigured bool   `json:"apiKeyConfigured"`
	Timestamp        string `json:"timestamp"`
}

// TestResponse reports the outcome of one live round-trip to the generation
// backend. Only the fields relevant to the outcome are set.
type TestResponse struct {
	Status   string `json:"status"`
	Model    string `json:"model,omitempty"`
	Response string `json:"response,omitempty"`
	Message  string `json:"message,omitempty"`
	Error    string `json:"error,omitempty"`
}
