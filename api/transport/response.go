package transport

import "encoding/json"

// Envelope is the response wrapper every endpoint uses: {success, data, message}.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Message string      `json:"message"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, message string) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
		Message: message,
	}
}

// NewError returns a failure envelope.
func NewError(message string) Envelope {
	return Envelope{
		Success: false,
		Message: message,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// RawEnvelope is the decoding side of Envelope; Data is kept raw so callers pick the shape.
type RawEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// HasData reports whether the envelope carried a non-null data field.
func (e RawEnvelope) HasData() bool {
	return len(e.Data) > 0 && string(e.Data) != "null"
}
