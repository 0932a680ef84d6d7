package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"orcamentos/internal/domain"
	"orcamentos/internal/domain/budget"
	"orcamentos/internal/shared/patch"
)

type BudgetService interface {
	CreateBudget(ctx context.Context, userID int64, params budget.CreateParams) (*budget.Budget, error)
	GetBudget(ctx context.Context, userID, id int64) (*budget.Budget, error)
	ListBudgets(ctx context.Context, userID int64) ([]*budget.Budget, error)
	UpdateBudget(ctx context.Context, userID, id int64, params budget.UpdateParams) (*budget.Budget, error)
	DeleteBudget(ctx context.Context, userID, id int64) error
}

type BudgetHandler struct {
	service BudgetService
	logger  *slog.Logger
}

func NewBudgetHandler(service BudgetService, logger *slog.Logger) *BudgetHandler {
	return &BudgetHandler{service: service, logger: logger.With("handler", "budgets")}
}

type CreateBudgetRequest struct {
	Name         string           `json:"nome"`
	InitialValue *decimal.Decimal `json:"valor_inicial"`
	ClosingDate  *time.Time       `json:"data_encerramento"`
	InactiveAt   *time.Time       `json:"data_inatividade"`
}

type UpdateBudgetRequest struct {
	Name         *string                `json:"nome"`
	InitialValue *decimal.Decimal       `json:"valor_inicial"`
	ClosingDate  patch.Field[time.Time] `json:"data_encerramento"`
	InactiveAt   patch.Field[time.Time] `json:"data_inatividade"`
}

type BudgetResponse struct {
	ID           int64       `json:"id"`
	Name         string      `json:"nome"`
	InitialValue json.Number `json:"valor_inicial"`
	CurrentValue json.Number `json:"valor_atual"`
	FreeValue    json.Number `json:"valor_livre"`
	ClosingDate  *time.Time  `json:"data_encerramento"`
	InactiveAt   *time.Time  `json:"data_inatividade"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func toBudgetResponse(b *budget.Budget) BudgetResponse {
	return BudgetResponse{
		ID:           b.ID,
		Name:         b.Name,
		InitialValue: money(b.InitialValue),
		CurrentValue: money(b.CurrentValue),
		FreeValue:    money(b.FreeValue),
		ClosingDate:  b.ClosingDate,
		InactiveAt:   b.InactiveAt,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// HandleBudgets routes requests to the appropriate handler based on method
func (h *BudgetHandler) HandleBudgets(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r, userID)
	case http.MethodPost:
		h.handleCreate(w, r, userID)
	default:
		methodNotAllowed(w)
	}
}

// HandleBudgetByID routes requests for a specific budget
func (h *BudgetHandler) HandleBudgetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id", budget.ErrNotFound)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, userID, id)
	case http.MethodPatch:
		h.handleUpdate(w, r, userID, id)
	case http.MethodDelete:
		h.handleDelete(w, r, userID, id)
	default:
		methodNotAllowed(w)
	}
}

func (h *BudgetHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	budgets, err := h.service.ListBudgets(r.Context(), userID)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response := make([]BudgetResponse, 0, len(budgets))
	for _, b := range budgets {
		response = append(response, toBudgetResponse(b))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *BudgetHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	if req.InitialValue == nil {
		writeError(w, r, h.logger, domain.NewValidationError("valor_inicial", "valor_inicial é obrigatório"))
		return
	}

	b, err := h.service.CreateBudget(r.Context(), userID, budget.CreateParams{
		Name:         req.Name,
		InitialValue: *req.InitialValue,
		ClosingDate:  req.ClosingDate,
		InactiveAt:   req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "budget created", "user_id", userID, "budget_id", b.ID)
	writeJSON(w, http.StatusCreated, toBudgetResponse(b))
}

func (h *BudgetHandler) handleGet(w http.ResponseWriter, r *http.Request, userID, id int64) {
	b, err := h.service.GetBudget(r.Context(), userID, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (h *BudgetHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID, id int64) {
	var req UpdateBudgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	b, err := h.service.UpdateBudget(r.Context(), userID, id, budget.UpdateParams{
		Name:         req.Name,
		InitialValue: req.InitialValue,
		ClosingDate:  req.ClosingDate,
		InactiveAt:   req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}

func (h *BudgetHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID, id int64) {
	if err := h.service.DeleteBudget(r.Context(), userID, id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
