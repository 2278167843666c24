package usecase

import (
	"fmt"
	"strconv"
)

const (
	DefaultListLimit = 100
	MaxListLimit     = 1000

	msgNotInteger  = "deve ser um número inteiro"
	msgNegative    = "não pode ser negativo"
	msgNotPositive = "deve ser maior que zero"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ParseListLeadsInput reads the raw skip/limit query values. Empty values take
// the defaults; limit above MaxListLimit is clamped.
func ParseListLeadsInput(rawSkip, rawLimit string) (ListLeadsInput, error) {
	var errors []ValidationError
	input := ListLeadsInput{Skip: 0, Limit: DefaultListLimit}

	if rawSkip != "" {
		skip, err := strconv.Atoi(rawSkip)
		switch {
		case err != nil:
			errors = append(errors, ValidationError{"skip", msgNotInteger})
		case skip < 0:
			errors = append(errors, ValidationError{"skip", msgNegative})
		default:
			input.Skip = skip
		}
	}

	if rawLimit != "" {
		limit, err := strconv.Atoi(rawLimit)
		switch {
		case err != nil:
			errors = append(errors, ValidationError{"limit", msgNotInteger})
		case limit <= 0:
			errors = append(errors, ValidationError{"limit", msgNotPositive})
		default:
			input.Limit = limit
		}
	}

	if len(errors) > 0 {
		return ListLeadsInput{}, paginationError(errors)
	}

	return input.normalized(), nil
}

func (in ListLeadsInput) validate() error {
	var errors []ValidationError
	if in.Skip < 0 {
		errors = append(errors, ValidationError{"skip", msgNegative})
	}
	if in.Limit < 0 {
		errors = append(errors, ValidationError{"limit", msgNotPositive})
	}
	if len(errors) > 0 {
		return paginationError(errors)
	}
	return nil
}

func (in ListLeadsInput) normalized() ListLeadsInput {
	if in.Limit == 0 {
		in.Limit = DefaultListLimit
	}
	if in.Limit > MaxListLimit {
		in.Limit = MaxListLimit
	}
	return in
}

func paginationError(errs []ValidationError) *DomainError {
	errMsg := "paginação inválida: "
	for i, e := range errs {
		if i > 0 {
			errMsg += ", "
		}
		errMsg += e.Field + " (" + e.Message + ")"
	}
	return &DomainError{Code: CodeInvalidPagination, Message: errMsg, Field: errs[0].Field}
}
