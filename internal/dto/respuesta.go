package dto

// Respuesta is the success envelope shared by every endpoint. Failures use
// apierror.Envelope, which has the same success/message keys.
type Respuesta struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

func OK(data any, msg string) Respuesta {
	return Respuesta{Success: true, Data: data, Message: msg}
}
