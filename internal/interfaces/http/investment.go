package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"orcamentos/internal/domain"
	"orcamentos/internal/domain/investment"
	"orcamentos/internal/shared/patch"
)

type InvestmentService interface {
	CreateInvestment(ctx context.Context, userID int64, params investment.CreateParams) (*investment.Investment, error)
	GetInvestment(ctx context.Context, userID, id int64) (*investment.Investment, error)
	ListInvestments(ctx context.Context, userID int64) ([]*investment.Investment, error)
	UpdateInvestment(ctx context.Context, userID, id int64, params investment.UpdateParams) (*investment.Investment, error)
	DeleteInvestment(ctx context.Context, userID, id int64) error

	CreateEntry(ctx context.Context, userID, investmentID int64, params investment.CreateEntryParams) (*investment.TimelineEntry, error)
	ListEntries(ctx context.Context, userID, investmentID int64) ([]*investment.TimelineEntry, error)
	GetEntry(ctx context.Context, userID, investmentID, id int64) (*investment.TimelineEntry, error)
	UpdateEntry(ctx context.Context, userID, investmentID, id int64, params investment.UpdateEntryParams) (*investment.TimelineEntry, error)
	DeleteEntry(ctx context.Context, userID, investmentID, id int64) error
}

// InvestmentHandler serves investments and their value timelines.
type InvestmentHandler struct {
	service InvestmentService
	logger  *slog.Logger
}

func NewInvestmentHandler(service InvestmentService, logger *slog.Logger) *InvestmentHandler {
	return &InvestmentHandler{service: service, logger: logger.With("handler", "investments")}
}

type CreateInvestmentRequest struct {
	CategoryID   int64            `json:"categoria_id"`
	Name         string           `json:"nome"`
	Description  string           `json:"descricao"`
	InitialValue *decimal.Decimal `json:"valor_inicial"`
	InactiveAt   *time.Time       `json:"data_inatividade"`
}

type UpdateInvestmentRequest struct {
	CategoryID   *int64                 `json:"categoria_id"`
	Name         *string                `json:"nome"`
	Description  *string                `json:"descricao"`
	InitialValue *decimal.Decimal       `json:"valor_inicial"`
	InactiveAt   patch.Field[time.Time] `json:"data_inatividade"`
}

type InvestmentResponse struct {
	ID           int64       `json:"id"`
	CategoryID   int64       `json:"categoria_id"`
	CategoryName string      `json:"categoria_nome"`
	Name         string      `json:"nome"`
	Description  string      `json:"descricao"`
	InitialValue json.Number `json:"valor_inicial"`
	CurrentValue json.Number `json:"valor_atual"`
	InactiveAt   *time.Time  `json:"data_inatividade"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func toInvestmentResponse(inv *investment.Investment) InvestmentResponse {
	return InvestmentResponse{
		ID:           inv.ID,
		CategoryID:   inv.CategoryID,
		CategoryName: inv.CategoryName,
		Name:         inv.Name,
		Description:  inv.Description,
		InitialValue: money(inv.InitialValue),
		CurrentValue: money(inv.CurrentValue),
		InactiveAt:   inv.InactiveAt,
		CreatedAt:    inv.CreatedAt,
		UpdatedAt:    inv.UpdatedAt,
	}
}

type CreateEntryRequest struct {
	Value        *decimal.Decimal `json:"valor"`
	RegisteredAt *time.Time       `json:"data_registro"`
	InactiveAt   *time.Time       `json:"data_inatividade"`
}

type UpdateEntryRequest struct {
	Value        *decimal.Decimal       `json:"valor"`
	RegisteredAt *time.Time             `json:"data_registro"`
	InactiveAt   patch.Field[time.Time] `json:"data_inatividade"`
}

type EntryResponse struct {
	ID           int64       `json:"id"`
	InvestmentID int64       `json:"investimento_id"`
	Value        json.Number `json:"valor"`
	RegisteredAt time.Time   `json:"data_registro"`
	InactiveAt   *time.Time  `json:"data_inatividade"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func toEntryResponse(e *investment.TimelineEntry) EntryResponse {
	return EntryResponse{
		ID:           e.ID,
		InvestmentID: e.InvestmentID,
		Value:        money(e.Value),
		RegisteredAt: e.RegisteredAt,
		InactiveAt:   e.InactiveAt,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
}

// HandleInvestments routes requests to the appropriate handler based on method
func (h *InvestmentHandler) HandleInvestments(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		list, err := h.service.ListInvestments(r.Context(), userID)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		response := make([]InvestmentResponse, 0, len(list))
		for _, inv := range list {
			response = append(response, toInvestmentResponse(inv))
		}
		writeJSON(w, http.StatusOK, response)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	default:
		methodNotAllowed(w)
	}
}

// HandleInvestmentByID routes requests for a specific investment
func (h *InvestmentHandler) HandleInvestmentByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, err := pathID(r, "id", investment.ErrNotFound)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		inv, err := h.service.GetInvestment(r.Context(), userID, id)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toInvestmentResponse(inv))
	case http.MethodPatch:
		h.handleUpdate(w, r, userID, id)
	case http.MethodDelete:
		if err := h.service.DeleteInvestment(r.Context(), userID, id); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (h *InvestmentHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateInvestmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.InitialValue == nil {
		writeError(w, r, h.logger, domain.NewValidationError("valor_inicial", "valor_inicial é obrigatório"))
		return
	}

	inv, err := h.service.CreateInvestment(r.Context(), userID, investment.CreateParams{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		InitialValue: *req.InitialValue,
		InactiveAt:   req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "investment created", "user_id", userID, "investment_id", inv.ID)
	writeJSON(w, http.StatusCreated, toInvestmentResponse(inv))
}

func (h *InvestmentHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID, id int64) {
	var req UpdateInvestmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	inv, err := h.service.UpdateInvestment(r.Context(), userID, id, investment.UpdateParams{
		CategoryID:   req.CategoryID,
		Name:         req.Name,
		Description:  req.Description,
		InitialValue: req.InitialValue,
		InactiveAt:   req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toInvestmentResponse(inv))
}

// HandleTimeline routes /api/investimentos/{id}/linha-do-tempo
func (h *InvestmentHandler) HandleTimeline(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	investmentID, err := pathID(r, "id", investment.ErrNotFound)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		entries, err := h.service.ListEntries(r.Context(), userID, investmentID)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		response := make([]EntryResponse, 0, len(entries))
		for _, e := range entries {
			response = append(response, toEntryResponse(e))
		}
		writeJSON(w, http.StatusOK, response)
	case http.MethodPost:
		var req CreateEntryRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		e, err := h.service.CreateEntry(r.Context(), userID, investmentID, investment.CreateEntryParams{
			Value:        req.Value,
			RegisteredAt: req.RegisteredAt,
			InactiveAt:   req.InactiveAt,
		})
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, toEntryResponse(e))
	default:
		methodNotAllowed(w)
	}
}

// HandleTimelineEntry routes /api/investimentos/{id}/linha-do-tempo/{registroID}
func (h *InvestmentHandler) HandleTimelineEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	investmentID, err := pathID(r, "id", investment.ErrNotFound)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	id, err := pathID(r, "registroID", investment.ErrTimelineEntryNotFound)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		e, err := h.service.GetEntry(r.Context(), userID, investmentID, id)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e))
	case http.MethodPatch:
		var req UpdateEntryRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		e, err := h.service.UpdateEntry(r.Context(), userID, investmentID, id, investment.UpdateEntryParams{
			Value:        req.Value,
			RegisteredAt: req.RegisteredAt,
			InactiveAt:   req.InactiveAt,
		})
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toEntryResponse(e))
	case http.MethodDelete:
		if err := h.service.DeleteEntry(r.Context(), userID, investmentID, id); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}
