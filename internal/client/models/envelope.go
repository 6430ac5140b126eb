package models

// Envelope is the common response shape: {success, message?, data?, count?}.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    T      `json:"data"`
	Count   int    `json:"count,omitempty"`
}

// Result is what a successful store operation hands back to its caller.
type Result[T any] struct {
	Message string
	Data    T
	Count   int
}
