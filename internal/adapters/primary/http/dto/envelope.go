package dto

// Envelope wraps every response body except the malformed-JSON shortcut.
type Envelope struct {
	Status string    `json:"status"`
	Data   any       `json:"data"`
	Error  ErrorBody `json:"error"`
}

type ErrorBody struct {
	Message string `json:"message"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"

	// InvalidJSONMessage is returned as {"error": ...} when a body cannot be
	// decoded at all.
	InvalidJSONMessage = "invalid JSON format"
)

func Success(data any) Envelope {
	if data == nil {
		data = struct{}{}
	}
	return Envelope{Status: StatusSuccess, Data: data}
}

func Failure(message string) Envelope {
	return Envelope{Status: StatusError, Data: struct{}{}, Error: ErrorBody{Message: message}}
}

// MessageResponse is the data payload of mutations that return nothing else.
type MessageResponse struct {
	Message string `json:"message"`
}
