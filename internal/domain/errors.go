package domain

import "errors"

// Errores de dominio (sin dependencias externas). El texto es el mensaje que ve el cliente.
// Los adaptadores y casos de uso los envuelven con fmt.Errorf("%w: ...") y la capa HTTP
// decide el status con errors.Is.
var (
	ErrValidation   = errors.New("Enter required fields")
	ErrUpload       = errors.New("image upload failed")
	ErrPersistence  = errors.New("storage operation failed")
	ErrConflict     = errors.New("Category is already use can't delete")
	ErrUnauthorized = errors.New("Unauthorized")
	ErrForbidden    = errors.New("Permission denied")
)
