package entity

import "strings"

const (
	PhoneMinLength = 10
	PhoneMaxLength = 13
)

// NormalizePhone aceita formatos como "(11) 99999-9999", "11999999999" e
// "+551199999999", mantendo apenas dígitos e o '+'. O resultado tem de 10 a
// 13 caracteres.
func NormalizePhone(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	clean := b.String()

	if len(clean) < PhoneMinLength {
		return "", &ValidationError{Field: "phone", Message: "Telefone deve ter pelo menos 10 dígitos"}
	}
	if len(clean) > PhoneMaxLength {
		return "", &ValidationError{Field: "phone", Message: "Telefone inválido"}
	}
	// '+' só vale como prefixo do código do país
	if strings.LastIndexByte(clean, '+') > 0 {
		return "", &ValidationError{Field: "phone", Message: "Telefone inválido"}
	}

	return clean, nil
}
