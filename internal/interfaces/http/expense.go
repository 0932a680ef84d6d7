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
	"orcamentos/internal/domain/expense"
	"orcamentos/internal/shared/patch"
)

type ExpenseService interface {
	CreateFixed(ctx context.Context, userID, budgetID int64, params expense.CreateFixedParams) (*expense.Fixed, error)
	ListFixed(ctx context.Context, userID, budgetID int64, filter expense.Filter) ([]*expense.Fixed, error)
	GetFixed(ctx context.Context, userID, budgetID, id int64) (*expense.Fixed, error)
	UpdateFixed(ctx context.Context, userID, budgetID, id int64, params expense.UpdateFixedParams) (*expense.Fixed, error)
	DeleteFixed(ctx context.Context, userID, budgetID, id int64) error

	CreateVariable(ctx context.Context, userID, budgetID int64, params expense.CreateVariableParams) (*expense.Variable, error)
	ListVariable(ctx context.Context, userID, budgetID int64, filter expense.Filter) ([]*expense.Variable, error)
	GetVariable(ctx context.Context, userID, budgetID, id int64) (*expense.Variable, error)
	UpdateVariable(ctx context.Context, userID, budgetID, id int64, params expense.UpdateVariableParams) (*expense.Variable, error)
	DeleteVariable(ctx context.Context, userID, budgetID, id int64) error
}

// ExpenseHandler serves the fixed and variable ledgers nested under a budget.
type ExpenseHandler struct {
	service ExpenseService
	logger  *slog.Logger
	now     func() time.Time
}

func NewExpenseHandler(service ExpenseService, logger *slog.Logger) *ExpenseHandler {
	return &ExpenseHandler{service: service, logger: logger.With("handler", "expenses"), now: time.Now}
}

type CreateFixedRequest struct {
	CategoryID  int64            `json:"categoria_id"`
	Description string           `json:"descricao"`
	Expected    *decimal.Decimal `json:"previsto"`
	Value       *decimal.Decimal `json:"valor"`
	PaidAt      *time.Time       `json:"data_pgto"`
	DueDate     *time.Time       `json:"data_venc"`
	Notes       *string          `json:"observacoes"`
	InactiveAt  *time.Time       `json:"data_inatividade"`
}

type UpdateFixedRequest struct {
	CategoryID  *int64                       `json:"categoria_id"`
	Description *string                      `json:"descricao"`
	Expected    *decimal.Decimal             `json:"previsto"`
	Value       patch.Field[decimal.Decimal] `json:"valor"`
	PaidAt      patch.Field[time.Time]       `json:"data_pgto"`
	DueDate     patch.Field[time.Time]       `json:"data_venc"`
	Notes       patch.Field[string]          `json:"observacoes"`
	InactiveAt  patch.Field[time.Time]       `json:"data_inatividade"`
}

type FixedResponse struct {
	ID           int64        `json:"id"`
	BudgetID     int64        `json:"orcamento_id"`
	CategoryID   int64        `json:"categoria_id"`
	CategoryName string       `json:"categoria_nome"`
	Description  string       `json:"descricao"`
	Expected     json.Number  `json:"previsto"`
	Value        *json.Number `json:"valor"`
	PaidAt       *time.Time   `json:"data_pgto"`
	DueDate      *time.Time   `json:"data_venc"`
	Paid         bool         `json:"pago"`
	Overdue      bool         `json:"atrasado"`
	Notes        *string      `json:"observacoes"`
	InactiveAt   *time.Time   `json:"data_inatividade"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func toFixedResponse(f *expense.Fixed, now time.Time) FixedResponse {
	return FixedResponse{
		ID:           f.ID,
		BudgetID:     f.BudgetID,
		CategoryID:   f.CategoryID,
		CategoryName: f.CategoryName,
		Description:  f.Description,
		Expected:     money(f.Expected),
		Value:        moneyPtr(f.Value),
		PaidAt:       f.PaidAt,
		DueDate:      f.DueDate,
		Paid:         f.IsPaid(),
		Overdue:      f.IsOverdue(now),
		Notes:        f.Notes,
		InactiveAt:   f.InactiveAt,
		CreatedAt:    f.CreatedAt,
		UpdatedAt:    f.UpdatedAt,
	}
}

type CreateVariableRequest struct {
	CategoryID  int64            `json:"categoria_id"`
	Description string           `json:"descricao"`
	Value       *decimal.Decimal `json:"valor"`
	PaidAt      *time.Time       `json:"data_pgto"`
	Notes       *string          `json:"observacoes"`
	InactiveAt  *time.Time       `json:"data_inatividade"`
}

type UpdateVariableRequest struct {
	CategoryID  *int64                       `json:"categoria_id"`
	Description *string                      `json:"descricao"`
	Value       patch.Field[decimal.Decimal] `json:"valor"`
	PaidAt      patch.Field[time.Time]       `json:"data_pgto"`
	Notes       patch.Field[string]          `json:"observacoes"`
	InactiveAt  patch.Field[time.Time]       `json:"data_inatividade"`
}

type VariableResponse struct {
	ID           int64       `json:"id"`
	BudgetID     int64       `json:"orcamento_id"`
	CategoryID   int64       `json:"categoria_id"`
	CategoryName string      `json:"categoria_nome"`
	Description  string      `json:"descricao"`
	Value        json.Number `json:"valor"`
	PaidAt       time.Time   `json:"data_pgto"`
	Notes        *string     `json:"observacoes"`
	InactiveAt   *time.Time  `json:"data_inatividade"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

func toVariableResponse(v *expense.Variable) VariableResponse {
	return VariableResponse{
		ID:           v.ID,
		BudgetID:     v.BudgetID,
		CategoryID:   v.CategoryID,
		CategoryName: v.CategoryName,
		Description:  v.Description,
		Value:        money(v.Value),
		PaidAt:       v.PaidAt,
		Notes:        v.Notes,
		InactiveAt:   v.InactiveAt,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

// parseFilter reads the ledger filters from the query string.
func parseFilter(r *http.Request) (expense.Filter, error) {
	q := r.URL.Query()
	var v domain.ValidationError

	f := expense.Filter{
		Description: q.Get("descricao"),
		Category:    q.Get("categoria"),
		Status:      expense.PaymentStatus(q.Get("status")),
		PaidOn:      parseDateParam(q, "data_pgto", &v),
		PaidFrom:    parseDateParam(q, "data_pgto_inicio", &v),
		PaidTo:      parseDateParam(q, "data_pgto_fim", &v),
		Overdue:     parseBoolParam(q, "atrasado", &v),
	}
	if err := v.ErrOrNil(); err != nil {
		return expense.Filter{}, err
	}
	return f, nil
}

// budgetAndExpenseIDs resolves the {id} and {gastoID} path parameters.
func budgetAndExpenseIDs(r *http.Request, notFound error) (int64, int64, error) {
	budgetID, err := pathID(r, "id", budget.ErrNotFound)
	if err != nil {
		return 0, 0, err
	}
	id, err := pathID(r, "gastoID", notFound)
	if err != nil {
		return 0, 0, err
	}
	return budgetID, id, nil
}

// HandleFixed routes /api/orcamentos/{id}/gastos-fixos
func (h *ExpenseHandler) HandleFixed(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	budgetID, err := pathID(r, "id", budget.ErrNotFound)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleListFixed(w, r, userID, budgetID)
	case http.MethodPost:
		h.handleCreateFixed(w, r, userID, budgetID)
	default:
		methodNotAllowed(w)
	}
}

// HandleFixedByID routes /api/orcamentos/{id}/gastos-fixos/{gastoID}
func (h *ExpenseHandler) HandleFixedByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	budgetID, id, err := budgetAndExpenseIDs(r, expense.ErrFixedNotFound)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		f, err := h.service.GetFixed(r.Context(), userID, budgetID, id)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toFixedResponse(f, h.now()))
	case http.MethodPatch:
		h.handleUpdateFixed(w, r, userID, budgetID, id)
	case http.MethodDelete:
		if err := h.service.DeleteFixed(r.Context(), userID, budgetID, id); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (h *ExpenseHandler) handleListFixed(w http.ResponseWriter, r *http.Request, userID, budgetID int64) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	list, err := h.service.ListFixed(r.Context(), userID, budgetID, filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	now := h.now()
	response := make([]FixedResponse, 0, len(list))
	for _, f := range list {
		response = append(response, toFixedResponse(f, now))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *ExpenseHandler) handleCreateFixed(w http.ResponseWriter, r *http.Request, userID, budgetID int64) {
	var req CreateFixedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Expected == nil {
		writeError(w, r, h.logger, domain.NewValidationError("previsto", "previsto é obrigatório"))
		return
	}

	f, err := h.service.CreateFixed(r.Context(), userID, budgetID, expense.CreateFixedParams{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Expected:    *req.Expected,
		Value:       req.Value,
		PaidAt:      req.PaidAt,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		InactiveAt:  req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "fixed expense created", "budget_id", budgetID, "expense_id", f.ID)
	writeJSON(w, http.StatusCreated, toFixedResponse(f, h.now()))
}

func (h *ExpenseHandler) handleUpdateFixed(w http.ResponseWriter, r *http.Request, userID, budgetID, id int64) {
	var req UpdateFixedRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	f, err := h.service.UpdateFixed(r.Context(), userID, budgetID, id, expense.UpdateFixedParams{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Expected:    req.Expected,
		Value:       req.Value,
		PaidAt:      req.PaidAt,
		DueDate:     req.DueDate,
		Notes:       req.Notes,
		InactiveAt:  req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toFixedResponse(f, h.now()))
}

// HandleVariable routes /api/orcamentos/{id}/gastos-variados
func (h *ExpenseHandler) HandleVariable(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	budgetID, err := pathID(r, "id", budget.ErrNotFound)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleListVariable(w, r, userID, budgetID)
	case http.MethodPost:
		h.handleCreateVariable(w, r, userID, budgetID)
	default:
		methodNotAllowed(w)
	}
}

// HandleVariableByID routes /api/orcamentos/{id}/gastos-variados/{gastoID}
func (h *ExpenseHandler) HandleVariableByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	budgetID, id, err := budgetAndExpenseIDs(r, expense.ErrVariableNotFound)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		v, err := h.service.GetVariable(r.Context(), userID, budgetID, id)
		if err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toVariableResponse(v))
	case http.MethodPatch:
		h.handleUpdateVariable(w, r, userID, budgetID, id)
	case http.MethodDelete:
		if err := h.service.DeleteVariable(r.Context(), userID, budgetID, id); err != nil {
			writeError(w, r, h.logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w)
	}
}

func (h *ExpenseHandler) handleListVariable(w http.ResponseWriter, r *http.Request, userID, budgetID int64) {
	filter, err := parseFilter(r)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	list, err := h.service.ListVariable(r.Context(), userID, budgetID, filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response := make([]VariableResponse, 0, len(list))
	for _, v := range list {
		response = append(response, toVariableResponse(v))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *ExpenseHandler) handleCreateVariable(w http.ResponseWriter, r *http.Request, userID, budgetID int64) {
	var req CreateVariableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	v, err := h.service.CreateVariable(r.Context(), userID, budgetID, expense.CreateVariableParams{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Value:       req.Value,
		PaidAt:      req.PaidAt,
		Notes:       req.Notes,
		InactiveAt:  req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "variable expense created", "budget_id", budgetID, "expense_id", v.ID)
	writeJSON(w, http.StatusCreated, toVariableResponse(v))
}

func (h *ExpenseHandler) handleUpdateVariable(w http.ResponseWriter, r *http.Request, userID, budgetID, id int64) {
	var req UpdateVariableRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	v, err := h.service.UpdateVariable(r.Context(), userID, budgetID, id, expense.UpdateVariableParams{
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Value:       req.Value,
		PaidAt:      req.PaidAt,
		Notes:       req.Notes,
		InactiveAt:  req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toVariableResponse(v))
}
