package dto

// Envelope cuerpo fijo de todas las respuestas HTTP: {message?, data?, error, success}.
type Envelope struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   bool        `json:"error"`
	Success bool        `json:"success"`
}

// OK construye un envelope de éxito.
func OK(message string, data interface{}) Envelope {
	return Envelope{Message: message, Data: data, Error: false, Success: true}
}

// Fail construye un envelope de error. Nunca lleva data ni detalles internos.
func Fail(message string) Envelope {
	return Envelope{Message: message, Error: true, Success: false}
}
