package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcamentos/internal/domain/investment"
)

// MockInvestmentService implements InvestmentService for testing
type MockInvestmentService struct {
	CreateInvestmentFunc func(ctx context.Context, userID int64, params investment.CreateParams) (*investment.Investment, error)
	GetInvestmentFunc    func(ctx context.Context, userID, id int64) (*investment.Investment, error)
	ListInvestmentsFunc  func(ctx context.Context, userID int64) ([]*investment.Investment, error)
	UpdateInvestmentFunc func(ctx context.Context, userID, id int64, params investment.UpdateParams) (*investment.Investment, error)
	DeleteInvestmentFunc func(ctx context.Context, userID, id int64) error
	CreateEntryFunc      func(ctx context.Context, userID, investmentID int64, params investment.CreateEntryParams) (*investment.TimelineEntry, error)
	ListEntriesFunc      func(ctx context.Context, userID, investmentID int64) ([]*investment.TimelineEntry, error)
	GetEntryFunc         func(ctx context.Context, userID, investmentID, id int64) (*investment.TimelineEntry, error)
	UpdateEntryFunc      func(ctx context.Context, userID, investmentID, id int64, params investment.UpdateEntryParams) (*investment.TimelineEntry, error)
	DeleteEntryFunc      func(ctx context.Context, userID, investmentID, id int64) error
}

func (m *MockInvestmentService) CreateInvestment(ctx context.Context, userID int64, params investment.CreateParams) (*investment.Investment, error) {
	if m.CreateInvestmentFunc != nil {
		return m.CreateInvestmentFunc(ctx, userID, params)
	}
	return nil, nil
}

func (m *MockInvestmentService) GetInvestment(ctx context.Context, userID, id int64) (*investment.Investment, error) {
	if m.GetInvestmentFunc != nil {
		return m.GetInvestmentFunc(ctx, userID, id)
	}
	return nil, investment.ErrNotFound
}

func (m *MockInvestmentService) ListInvestments(ctx context.Context, userID int64) ([]*investment.Investment, error) {
	if m.ListInvestmentsFunc != nil {
		return m.ListInvestmentsFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockInvestmentService) UpdateInvestment(ctx context.Context, userID, id int64, params investment.UpdateParams) (*investment.Investment, error) {
	if m.UpdateInvestmentFunc != nil {
		return m.UpdateInvestmentFunc(ctx, userID, id, params)
	}
	return nil, investment.ErrNotFound
}

func (m *MockInvestmentService) DeleteInvestment(ctx context.Context, userID, id int64) error {
	if m.DeleteInvestmentFunc != nil {
		return m.DeleteInvestmentFunc(ctx, userID, id)
	}
	return nil
}

func (m *MockInvestmentService) CreateEntry(ctx context.Context, userID, investmentID int64, params investment.CreateEntryParams) (*investment.TimelineEntry, error) {
	if m.CreateEntryFunc != nil {
		return m.CreateEntryFunc(ctx, userID, investmentID, params)
	}
	return nil, nil
}

func (m *MockInvestmentService) ListEntries(ctx context.Context, userID, investmentID int64) ([]*investment.TimelineEntry, error) {
	if m.ListEntriesFunc != nil {
		return m.ListEntriesFunc(ctx, userID, investmentID)
	}
	return nil, nil
}

func (m *MockInvestmentService) GetEntry(ctx context.Context, userID, investmentID, id int64) (*investment.TimelineEntry, error) {
	if m.GetEntryFunc != nil {
		return m.GetEntryFunc(ctx, userID, investmentID, id)
	}
	return nil, investment.ErrTimelineEntryNotFound
}

func (m *MockInvestmentService) UpdateEntry(ctx context.Context, userID, investmentID, id int64, params investment.UpdateEntryParams) (*investment.TimelineEntry, error) {
	if m.UpdateEntryFunc != nil {
		return m.UpdateEntryFunc(ctx, userID, investmentID, id, params)
	}
	return nil, investment.ErrTimelineEntryNotFound
}

func (m *MockInvestmentService) DeleteEntry(ctx context.Context, userID, investmentID, id int64) error {
	if m.DeleteEntryFunc != nil {
		return m.DeleteEntryFunc(ctx, userID, investmentID, id)
	}
	return nil
}

func TestHandleInvestments_Create(t *testing.T) {
	h := NewInvestmentHandler(&MockInvestmentService{
		CreateInvestmentFunc: func(ctx context.Context, userID int64, params investment.CreateParams) (*investment.Investment, error) {
			assert.True(t, params.InitialValue.Equal(dec("100")))
			return &investment.Investment{
				ID: 2, CategoryID: params.CategoryID, Name: params.Name,
				InitialValue: params.InitialValue, CurrentValue: params.InitialValue,
			}, nil
		},
	}, discardLogger())

	rec := httptest.NewRecorder()
	h.HandleInvestments(rec, newRequest(http.MethodPost, "/api/investimentos", `{"categoria_id":5,"nome":"CDB","valor_inicial":100}`))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"valor_atual":100.00`)
}

func TestHandleInvestments_CreateRequiresInitialValue(t *testing.T) {
	h := NewInvestmentHandler(&MockInvestmentService{}, discardLogger())

	rec := httptest.NewRecorder()
	h.HandleInvestments(rec, newRequest(http.MethodPost, "/api/investimentos", `{"categoria_id":5,"nome":"CDB"}`))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInvestmentByID_Get(t *testing.T) {
	h := NewInvestmentHandler(&MockInvestmentService{
		GetInvestmentFunc: func(ctx context.Context, userID, id int64) (*investment.Investment, error) {
			return &investment.Investment{ID: id, InitialValue: dec("100"), CurrentValue: dec("75")}, nil
		},
	}, discardLogger())

	rec := httptest.NewRecorder()
	h.HandleInvestmentByID(rec, newRequest(http.MethodGet, "/api/investimentos/2", nil, "id", "2"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody[InvestmentResponse](t, rec)
	assert.Equal(t, "75.00", body.CurrentValue.String())
	assert.Equal(t, "100.00", body.InitialValue.String())
}

func TestHandleTimeline(t *testing.T) {
	registered := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)
	h := NewInvestmentHandler(&MockInvestmentService{
		CreateEntryFunc: func(ctx context.Context, userID, investmentID int64, params investment.CreateEntryParams) (*investment.TimelineEntry, error) {
			assert.Equal(t, int64(2), investmentID)
			if err := params.Validate(); err != nil {
				return nil, err
			}
			return &investment.TimelineEntry{ID: 9, InvestmentID: investmentID, Value: *params.Value, RegisteredAt: *params.RegisteredAt}, nil
		},
		ListEntriesFunc: func(ctx context.Context, userID, investmentID int64) ([]*investment.TimelineEntry, error) {
			return []*investment.TimelineEntry{
				{ID: 8, Value: dec("50"), RegisteredAt: registered.AddDate(0, 0, -1)},
				{ID: 9, Value: dec("75"), RegisteredAt: registered},
			}, nil
		},
	}, discardLogger())

	rec := httptest.NewRecorder()
	h.HandleTimeline(rec, newRequest(http.MethodPost, "/api/investimentos/2/linha-do-tempo",
		`{"valor":75,"data_registro":"2025-03-02T00:00:00Z"}`, "id", "2"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "75.00", decodeBody[EntryResponse](t, rec).Value.String())

	rec = httptest.NewRecorder()
	h.HandleTimeline(rec, newRequest(http.MethodPost, "/api/investimentos/2/linha-do-tempo", `{"valor":75}`, "id", "2"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"data_registro"`)

	rec = httptest.NewRecorder()
	h.HandleTimeline(rec, newRequest(http.MethodPost, "/api/investimentos/2/linha-do-tempo",
		`{"valor":-10,"data_registro":"2025-03-02T00:00:00Z"}`, "id", "2"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"valor"`)

	rec = httptest.NewRecorder()
	h.HandleTimeline(rec, newRequest(http.MethodGet, "/api/investimentos/2/linha-do-tempo", nil, "id", "2"))
	require.Equal(t, http.StatusOK, rec.Code)
	entries := decodeBody[[]EntryResponse](t, rec)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(9), entries[1].ID)
}

func TestHandleTimelineEntry(t *testing.T) {
	h := NewInvestmentHandler(&MockInvestmentService{
		DeleteEntryFunc: func(ctx context.Context, userID, investmentID, id int64) error {
			if investmentID != 2 {
				return investment.ErrNotFound
			}
			return nil
		},
	}, discardLogger())

	rec := httptest.NewRecorder()
	h.HandleTimelineEntry(rec, newRequest(http.MethodDelete, "/", nil, "id", "2", "registroID", "9"))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	h.HandleTimelineEntry(rec, newRequest(http.MethodDelete, "/", nil, "id", "3", "registroID", "9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), investment.ErrNotFound.Message)

	rec = httptest.NewRecorder()
	h.HandleTimelineEntry(rec, newRequest(http.MethodGet, "/", nil, "id", "2", "registroID", "9"))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), investment.ErrTimelineEntryNotFound.Message)
}
