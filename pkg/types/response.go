package types

// Envelope is the body shape of every API response.
type Envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
	// Message is a sentence, or a field -> messages map for validation failures.
	Message any `json:"message"`
}
