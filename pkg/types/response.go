package types

// Envelope is the uniform response body: status is "success" or "error", message is
// human readable, data carries the payload (null on errors).
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)
