package domain

import "errors"

// Tipos de error. Todo error de la capa de aplicación envuelve a uno de estos.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict with current state")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrRateLimited  = errors.New("too many requests")
	ErrInternal     = errors.New("internal error")
)

// Error tipo estable más un mensaje legible para el cliente.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

// Unwrap permite errors.Is(err, domain.ErrConflict) y similares.
func (e *Error) Unwrap() error { return e.Kind }

func NotFound(msg string) error     { return &Error{Kind: ErrNotFound, Message: msg} }
func InvalidInput(msg string) error { return &Error{Kind: ErrInvalidInput, Message: msg} }
func Conflict(msg string) error     { return &Error{Kind: ErrConflict, Message: msg} }
func Unauthorized(msg string) error { return &Error{Kind: ErrUnauthorized, Message: msg} }
func Forbidden(msg string) error    { return &Error{Kind: ErrForbidden, Message: msg} }
func RateLimited(msg string) error  { return &Error{Kind: ErrRateLimited, Message: msg} }

// Kind devuelve el tipo centinela de err, o ErrInternal si no tiene ninguno.
func Kind(err error) error {
	for _, k := range []error{ErrNotFound, ErrInvalidInput, ErrConflict, ErrUnauthorized, ErrForbidden, ErrRateLimited} {
		if errors.Is(err, k) {
			return k
		}
	}
	return ErrInternal
}

// Message texto de err para el cliente. Los errores sin tipo son opacos.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	if k := Kind(err); k != ErrInternal {
		return k.Error()
	}
	return "internal server error"
}
