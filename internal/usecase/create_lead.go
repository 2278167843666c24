package usecase

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
	"github.com/xavierca1/vida-ativa-leads/internal/infra/queue"
)

const MsgLeadCreated = "Cadastro realizado com sucesso! Você será redirecionado para o grupo do WhatsApp."

type CreateLeadUseCase struct {
	Repo             entity.LeadRepositoryInterface
	Publisher        LeadEventPublisher
	WhatsAppGroupURL string
	Logger           *zap.Logger
}

func NewCreateLeadUseCase(
	repo entity.LeadRepositoryInterface,
	publisher LeadEventPublisher,
	whatsappGroupURL string,
	logger *zap.Logger,
) *CreateLeadUseCase {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CreateLeadUseCase{
		Repo:             repo,
		Publisher:        publisher,
		WhatsAppGroupURL: whatsappGroupURL,
		Logger:           logger,
	}
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	lead, err := entity.NewLead(input.Email, input.Phone, input.Source)
	if err != nil {
		var ve *entity.ValidationError
		if errors.As(err, &ve) {
			return nil, &DomainError{Code: CodeValidation, Message: ve.Message, Field: ve.Field}
		}
		return nil, &TechnicalError{Code: CodeInternal, Message: "Erro interno", Err: err}
	}

	// Early exit only; the unique index decides below.
	existing, err := uc.Repo.FindByEmail(ctx, lead.Email)
	switch {
	case err == nil && existing != nil:
		return nil, duplicateEmailError()
	case err != nil && !errors.Is(err, entity.ErrLeadNotFound):
		return nil, databaseError("Erro interno", err)
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		if errors.Is(err, entity.ErrEmailAlreadyExists) {
			uc.Logger.Info("duplicate lead rejected by store", zap.String("lead_id", lead.ID))
			return nil, duplicateEmailError()
		}
		return nil, databaseError("Erro interno", err)
	}

	uc.Logger.Info("lead captured", zap.String("lead_id", lead.ID), zap.String("source", lead.Source))
	uc.publishCaptured(ctx, lead)

	return &CreateLeadOutput{
		ID:               lead.ID,
		Email:            lead.Email,
		Phone:            lead.Phone,
		Source:           lead.Source,
		CreatedAt:        lead.CreatedAt,
		WhatsAppGroupURL: uc.WhatsAppGroupURL,
		Message:          MsgLeadCreated,
	}, nil
}

// publishCaptured never fails the request: the lead is already stored.
func (uc *CreateLeadUseCase) publishCaptured(ctx context.Context, lead *entity.Lead) {
	payload := queue.LeadCapturedPayload{
		LeadID:    lead.ID,
		Email:     lead.Email,
		Phone:     lead.Phone,
		Source:    lead.Source,
		CreatedAt: lead.CreatedAt,
	}
	if err := uc.Publisher.PublishLeadCaptured(ctx, payload); err != nil {
		uc.Logger.Warn("lead stored but event not published", zap.String("lead_id", lead.ID), zap.Error(err))
	}
}
