package investment

import (
	"context"

	"orcamentos/internal/domain/category"
)

// CategoryLookup resolves investment category references.
type CategoryLookup interface {
	Exists(ctx context.Context, userID int64, kind category.Kind, id int64) (bool, error)
}

// Service contains the business logic for investments and their timelines
type Service struct {
	repo       Repository
	timeline   TimelineRepository
	categories CategoryLookup
}

// NewService creates a new investment service
func NewService(repo Repository, timeline TimelineRepository, categories CategoryLookup) *Service {
	return &Service{repo: repo, timeline: timeline, categories: categories}
}

// CreateInvestment creates an investment; with an empty timeline its current
// value is the initial value.
func (s *Service) CreateInvestment(ctx context.Context, userID int64, params CreateParams) (*Investment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, userID, params.CategoryID); err != nil {
		return nil, err
	}

	inv, err := s.repo.Create(ctx, userID, params)
	if err != nil {
		return nil, err
	}
	inv.CurrentValue = inv.InitialValue
	return inv, nil
}

// GetInvestment retrieves an investment with its derived current value
func (s *Service) GetInvestment(ctx context.Context, userID, id int64) (*Investment, error) {
	inv, err := s.resolve(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// ListInvestments lists the user's investments with their derived values
func (s *Service) ListInvestments(ctx context.Context, userID int64) ([]*Investment, error) {
	investments, err := s.repo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, investments...); err != nil {
		return nil, err
	}
	return investments, nil
}

// UpdateInvestment applies a partial update
func (s *Service) UpdateInvestment(ctx context.Context, userID, id int64, params UpdateParams) (*Investment, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if params.CategoryID != nil {
		if err := s.ensureCategory(ctx, userID, *params.CategoryID); err != nil {
			return nil, err
		}
	}

	inv, err := s.repo.Update(ctx, userID, id, params)
	if err != nil {
		return nil, err
	}
	if err := s.enrich(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

// DeleteInvestment soft-deletes an investment
func (s *Service) DeleteInvestment(ctx context.Context, userID, id int64) error {
	return s.repo.SoftDelete(ctx, userID, id)
}

// CreateEntry registers a new value on the investment's timeline
func (s *Service) CreateEntry(ctx context.Context, userID, investmentID int64, params CreateEntryParams) (*TimelineEntry, error) {
	if _, err := s.resolve(ctx, userID, investmentID); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.timeline.Create(ctx, investmentID, params)
}

// ListEntries returns the investment's timeline in chronological order
func (s *Service) ListEntries(ctx context.Context, userID, investmentID int64) ([]*TimelineEntry, error) {
	if _, err := s.resolve(ctx, userID, investmentID); err != nil {
		return nil, err
	}
	return s.timeline.List(ctx, investmentID)
}

// GetEntry retrieves one timeline entry of the investment
func (s *Service) GetEntry(ctx context.Context, userID, investmentID, id int64) (*TimelineEntry, error) {
	if _, err := s.resolve(ctx, userID, investmentID); err != nil {
		return nil, err
	}

	e, err := s.timeline.GetByID(ctx, investmentID, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrTimelineEntryNotFound
	}
	return e, nil
}

// UpdateEntry applies a partial update to a timeline entry
func (s *Service) UpdateEntry(ctx context.Context, userID, investmentID, id int64, params UpdateEntryParams) (*TimelineEntry, error) {
	if _, err := s.resolve(ctx, userID, investmentID); err != nil {
		return nil, err
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.timeline.Update(ctx, investmentID, id, params)
}

// DeleteEntry soft-deletes a timeline entry
func (s *Service) DeleteEntry(ctx context.Context, userID, investmentID, id int64) error {
	if _, err := s.resolve(ctx, userID, investmentID); err != nil {
		return err
	}
	return s.timeline.SoftDelete(ctx, investmentID, id)
}

func (s *Service) resolve(ctx context.Context, userID, id int64) (*Investment, error) {
	inv, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}
	return inv, nil
}

func (s *Service) ensureCategory(ctx context.Context, userID, categoryID int64) error {
	ok, err := s.categories.Exists(ctx, userID, category.KindInvestment, categoryID)
	if err != nil {
		return err
	}
	if !ok {
		return category.ErrNotFound
	}
	return nil
}

// enrich loads the timelines of all investments in one query.
func (s *Service) enrich(ctx context.Context, investments ...*Investment) error {
	if len(investments) == 0 {
		return nil
	}

	ids := make([]int64, len(investments))
	for i, inv := range investments {
		ids[i] = inv.ID
	}

	entries, err := s.timeline.ListByInvestmentIDs(ctx, ids)
	if err != nil {
		return err
	}

	byInvestment := make(map[int64][]TimelineEntry, len(investments))
	for _, e := range entries {
		byInvestment[e.InvestmentID] = append(byInvestment[e.InvestmentID], e)
	}

	for _, inv := range investments {
		inv.CurrentValue = CurrentValue(inv.InitialValue, byInvestment[inv.ID])
	}
	return nil
}
