package entity

import (
	"errors"
	"fmt"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrLeadNotFound       = errors.New("lead not found")
	ErrInvalidFlag        = errors.New("invalid lead flag")
)

// ValidationError aponta o campo rejeitado e o motivo, pronto para ser
// devolvido ao cliente.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
