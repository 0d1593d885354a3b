package domain

import "errors"

// ValidationError carries a user-correctable message. Handlers surface it
// verbatim with a 400; every other error kind maps to a fixed message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func NewValidationError(msg string) error {
	return &ValidationError{Msg: msg}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

var (
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrDuplicateEmail     = errors.New("email ya registrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrPasswordRequired   = errors.New("la contraseña es obligatoria para crear un usuario")

	// Opaque operation failures. Internal detail is logged, never surfaced.
	ErrRegistrationFailed = errors.New("error al registrar usuario")
	ErrLoginFailed        = errors.New("no se pudo iniciar sesión")
	ErrImcPersistence     = errors.New("no se pudo crear el registro IMC")
	ErrHistorialFailed    = errors.New("no se pudo obtener el historial de IMC")
	ErrEstadisticasFailed = errors.New("no se pudieron obtener estadísticas de IMC")
)
