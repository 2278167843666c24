package usecase

import "errors"

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeEmailRegistered   = "EMAIL_ALREADY_REGISTERED"
	CodeInvalidPagination = "INVALID_PAGINATION"
	CodeLeadNotFound      = "LEAD_NOT_FOUND"
	CodeInternal          = "INTERNAL_ERROR"
)

const (
	MsgEmailRegistered = "E-mail já cadastrado! Verifique seu WhatsApp para entrar no grupo."
	MsgLeadNotFound    = "Lead não encontrado"
)

// DomainError é uma falha causada pela requisição: o Message vai para o
// cliente como está.
type DomainError struct {
	Code    string
	Message string
	Field   string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError carries a client-safe Message; the cause stays in Err and is
// only ever logged.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func duplicateEmailError() *DomainError {
	return &DomainError{Code: CodeEmailRegistered, Message: MsgEmailRegistered, Field: "email"}
}

func leadNotFoundError() *DomainError {
	return &DomainError{Code: CodeLeadNotFound, Message: MsgLeadNotFound}
}

func databaseError(msg string, err error) *TechnicalError {
	return &TechnicalError{Code: CodeInternal, Message: msg, Err: err}
}
