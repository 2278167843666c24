package handlers_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/vida-ativa-leads/internal/infra/http/handlers"
	"github.com/xavierca1/vida-ativa-leads/internal/mocks"
)

type fakeBroker struct{ closed bool }

func (b fakeBroker) IsClosed() bool { return b.closed }

func TestRootHandler(t *testing.T) {
	h := handlers.NewHealthHandler(new(mocks.LeadRepository), nil, nil)

	rec := httptest.NewRecorder()
	h.Root(rec, httptest.NewRequest(http.MethodGet, "/api/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Vida Ativa 50+ API funcionando!","status":"healthy"}`, rec.Body.String())
}

func TestHealthHandlerHealthy(t *testing.T) {
	repo := new(mocks.LeadRepository)
	repo.On("Ping", mock.Anything).Return(nil)
	h := handlers.NewHealthHandler(repo, nil, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy","database":"connected","message":"API e banco de dados funcionando normalmente"}`, rec.Body.String())
}

func TestHealthHandlerStoreDownStill200(t *testing.T) {
	repo := new(mocks.LeadRepository)
	repo.On("Ping", mock.Anything).Return(errors.New("server selection timeout: mongo-0:27017"))
	h := handlers.NewHealthHandler(repo, fakeBroker{closed: false}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"unhealthy","database":"disconnected","rabbitmq":"connected","error":"Banco de dados indisponível"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "mongo-0")
}

func TestHealthHandlerReportsClosedBroker(t *testing.T) {
	repo := new(mocks.LeadRepository)
	repo.On("Ping", mock.Anything).Return(nil)
	h := handlers.NewHealthHandler(repo, fakeBroker{closed: true}, nil)

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
	assert.Contains(t, rec.Body.String(), `"rabbitmq":"disconnected"`)
}
