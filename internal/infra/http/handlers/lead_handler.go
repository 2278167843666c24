package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/vida-ativa-leads/internal/entity"
	"github.com/xavierca1/vida-ativa-leads/internal/infra/http/middleware"
	"github.com/xavierca1/vida-ativa-leads/internal/usecase"
)

type LeadHandler struct {
	CreateLeadUseCase *usecase.CreateLeadUseCase
	ListLeadsUseCase  *usecase.ListLeadsUseCase
	GetLeadUseCase    *usecase.GetLeadUseCase
	LeadStatsUseCase  *usecase.LeadStatsUseCase
	MarkStatusUseCase *usecase.MarkLeadStatusUseCase
	DeleteLeadUseCase *usecase.DeleteLeadUseCase
	Logger            *zap.Logger
}

type LeadUseCases struct {
	Create     *usecase.CreateLeadUseCase
	List       *usecase.ListLeadsUseCase
	Get        *usecase.GetLeadUseCase
	Stats      *usecase.LeadStatsUseCase
	MarkStatus *usecase.MarkLeadStatusUseCase
	Delete     *usecase.DeleteLeadUseCase
}

func NewLeadHandler(ucs LeadUseCases, logger *zap.Logger) *LeadHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LeadHandler{
		CreateLeadUseCase: ucs.Create,
		ListLeadsUseCase:  ucs.List,
		GetLeadUseCase:    ucs.Get,
		LeadStatsUseCase:  ucs.Stats,
		MarkStatusUseCase: ucs.MarkStatus,
		DeleteLeadUseCase: ucs.Delete,
		Logger:            logger,
	}
}

// MaxLeadBodyBytes bounds the landing page form body.
const MaxLeadBodyBytes = 4 << 10

type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
	Field  string `json:"field,omitempty"`
}

// Create handles POST /api/leads from the landing page form.
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxLeadBodyBytes)

	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "JSON inválido", "")
		return
	}

	output, err := h.CreateLeadUseCase.Execute(r.Context(), input)
	if err != nil {
		var de *usecase.DomainError
		if errors.As(err, &de) && de.Code == usecase.CodeEmailRegistered {
			middleware.RecordLeadDuplicate()
		}
		h.writeUseCaseError(w, r, err)
		return
	}

	middleware.RecordLeadCaptured(output.Source)
	writeJSON(w, http.StatusOK, output)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input, err := usecase.ParseListLeadsInput(q.Get("skip"), q.Get("limit"))
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}

	leads, err := h.ListLeadsUseCase.Execute(r.Context(), input)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.GetLeadUseCase.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.LeadStatsUseCase.Execute(r.Context())
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (h *LeadHandler) MarkWhatsAppJoined(w http.ResponseWriter, r *http.Request) {
	h.markStatus(w, r, entity.FlagWhatsAppJoined)
}

func (h *LeadHandler) MarkEbookSent(w http.ResponseWriter, r *http.Request) {
	h.markStatus(w, r, entity.FlagEbookSent)
}

func (h *LeadHandler) markStatus(w http.ResponseWriter, r *http.Request, flag entity.LeadFlag) {
	out, err := h.MarkStatusUseCase.Execute(r.Context(), chi.URLParam(r, "id"), flag)
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}

	middleware.RecordLeadStatusUpdate(string(flag))
	writeJSON(w, http.StatusOK, out)
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	out, err := h.DeleteLeadUseCase.Execute(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.writeUseCaseError(w, r, err)
		return
	}

	middleware.RecordLeadDeleted()
	writeJSON(w, http.StatusOK, out)
}

func (h *LeadHandler) writeUseCaseError(w http.ResponseWriter, r *http.Request, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeErrorResponse(w, domainStatus(de.Code), de.Code, de.Message, de.Field)
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		h.Logger.Error("request failed",
			zap.String("code", te.Code),
			zap.String("path", r.URL.Path),
			zap.Error(te.Err),
		)
		writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeInternal, te.Message, "")
		return
	}

	h.Logger.Error("unexpected error", zap.String("path", r.URL.Path), zap.Error(err))
	writeErrorResponse(w, http.StatusInternalServerError, usecase.CodeInternal, "Erro interno do servidor", "")
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeLeadNotFound:
		return http.StatusNotFound
	default:
		// validation, duplicate email and pagination are all client errors
		return http.StatusBadRequest
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, detail, field string) {
	writeJSON(w, status, ErrorResponse{Error: code, Detail: detail, Field: field})
}
