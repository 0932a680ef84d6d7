package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"orcamentos/internal/domain/category"
	"orcamentos/internal/shared/patch"
)

// CategoryService is the part of category.Service the handler needs.
type CategoryService interface {
	CreateCategory(ctx context.Context, userID int64, kind category.Kind, params category.CreateParams) (*category.Category, error)
	GetCategory(ctx context.Context, userID int64, kind category.Kind, id int64) (*category.Category, error)
	ListCategories(ctx context.Context, userID int64, kind category.Kind, filter category.ListFilter) ([]*category.Category, error)
	UpdateCategory(ctx context.Context, userID int64, kind category.Kind, id int64, params category.UpdateParams) (*category.Category, error)
	DeleteCategory(ctx context.Context, userID int64, kind category.Kind, id int64) error
}

// CategoryHandler serves one category registry. Spending and investment
// categories each get their own handler bound to a kind.
type CategoryHandler struct {
	service CategoryService
	kind    category.Kind
	logger  *slog.Logger
}

func NewCategoryHandler(service CategoryService, kind category.Kind, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		kind:    kind,
		logger:  logger.With("handler", "categories", "kind", string(kind)),
	}
}

type CreateCategoryRequest struct {
	Name       string     `json:"nome"`
	InactiveAt *time.Time `json:"data_inatividade"`
}

type UpdateCategoryRequest struct {
	Name       *string                `json:"nome"`
	InactiveAt patch.Field[time.Time] `json:"data_inatividade"`
}

type CategoryResponse struct {
	ID         int64      `json:"id"`
	Name       string     `json:"nome"`
	InactiveAt *time.Time `json:"data_inatividade"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func toCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:         c.ID,
		Name:       c.Name,
		InactiveAt: c.InactiveAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// HandleCategories routes requests to the appropriate handler based on method
func (h *CategoryHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
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

// HandleCategoryByID routes requests for a specific category
func (h *CategoryHandler) HandleCategoryByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	id, err := pathID(r, "id", category.ErrNotFound)
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

func (h *CategoryHandler) handleList(w http.ResponseWriter, r *http.Request, userID int64) {
	filter := category.ListFilter{Name: r.URL.Query().Get("nome")}

	categories, err := h.service.ListCategories(r.Context(), userID, h.kind, filter)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	response := make([]CategoryResponse, 0, len(categories))
	for _, c := range categories {
		response = append(response, toCategoryResponse(c))
	}
	writeJSON(w, http.StatusOK, response)
}

func (h *CategoryHandler) handleCreate(w http.ResponseWriter, r *http.Request, userID int64) {
	var req CreateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.service.CreateCategory(r.Context(), userID, h.kind, category.CreateParams{
		Name:       req.Name,
		InactiveAt: req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(r.Context(), "category created", "user_id", userID, "category_id", c.ID)
	writeJSON(w, http.StatusCreated, toCategoryResponse(c))
}

func (h *CategoryHandler) handleGet(w http.ResponseWriter, r *http.Request, userID, id int64) {
	c, err := h.service.GetCategory(r.Context(), userID, h.kind, id)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *CategoryHandler) handleUpdate(w http.ResponseWriter, r *http.Request, userID, id int64) {
	var req UpdateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	c, err := h.service.UpdateCategory(r.Context(), userID, h.kind, id, category.UpdateParams{
		Name:       req.Name,
		InactiveAt: req.InactiveAt,
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(c))
}

func (h *CategoryHandler) handleDelete(w http.ResponseWriter, r *http.Request, userID, id int64) {
	if err := h.service.DeleteCategory(r.Context(), userID, h.kind, id); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
