package entity

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	DefaultSource   = "landing_page"
	SourceMaxLength = 64
)

var validate = validator.New()

// Lead é um contato capturado na landing page.
type Lead struct {
	ID             string    `json:"id" bson:"id"`
	Email          string    `json:"email" bson:"email"`
	Phone          string    `json:"phone" bson:"phone"`
	Source         string    `json:"source" bson:"source"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" bson:"updated_at"`
	WhatsAppJoined bool      `json:"whatsapp_joined" bson:"whatsapp_joined"`
	EbookSent      bool      `json:"ebook_sent" bson:"ebook_sent"`
}

// LeadFlag names one of the follow-up booleans. The value doubles as the
// stored field/column name.
type LeadFlag string

const (
	FlagWhatsAppJoined LeadFlag = "whatsapp_joined"
	FlagEbookSent      LeadFlag = "ebook_sent"
)

func (f LeadFlag) Valid() bool {
	return f == FlagWhatsAppJoined || f == FlagEbookSent
}

// Factory
func NewLead(email, phone, source string) (*Lead, error) {
	if err := ValidateEmail(email); err != nil {
		return nil, err
	}

	cleanPhone, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}

	source, err = normalizeSource(source)
	if err != nil {
		return nil, err
	}

	// millisecond precision survives a round trip through either store
	now := time.Now().UTC().Truncate(time.Millisecond)
	return &Lead{
		ID:        uuid.New().String(),
		Email:     email,
		Phone:     cleanPhone,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// RestoreLead rebuilds a Lead from a stored row. Stored values were validated
// on the way in, so nothing is checked here.
func RestoreLead(id, email, phone, source string, createdAt, updatedAt time.Time, whatsappJoined, ebookSent bool) *Lead {
	return &Lead{
		ID:             id,
		Email:          email,
		Phone:          phone,
		Source:         source,
		CreatedAt:      createdAt.UTC(),
		UpdatedAt:      updatedAt.UTC(),
		WhatsAppJoined: whatsappJoined,
		EbookSent:      ebookSent,
	}
}

func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return &ValidationError{Field: "email", Message: "E-mail é obrigatório"}
	}
	if err := validate.Var(email, "email"); err != nil {
		return &ValidationError{Field: "email", Message: "E-mail inválido"}
	}
	return nil
}

func normalizeSource(source string) (string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return DefaultSource, nil
	}
	if len(source) > SourceMaxLength {
		return "", &ValidationError{Field: "source", Message: "Origem deve ter no máximo 64 caracteres"}
	}
	return source, nil
}

type LeadRepositoryInterface interface {
	// Create fails with ErrEmailAlreadyExists when the store's unique
	// constraint on email rejects the insert.
	Create(ctx context.Context, lead *Lead) error
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	// List orders by created_at desc, id asc.
	List(ctx context.Context, skip, limit int) ([]*Lead, error)
	// CountSince counts leads created at or after since; the zero time counts all.
	CountSince(ctx context.Context, since time.Time) (int64, error)
	SetFlag(ctx context.Context, id string, flag LeadFlag, at time.Time) error
	Delete(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}
