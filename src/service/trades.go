package service

import (
	"context"
	"fmt"
	"sort"

	logger "github.com/sirupsen/logrus"

	"tradejournal/src/analytics"
	"tradejournal/src/apperrors"
	"tradejournal/src/model"
	"tradejournal/src/repository"
	"tradejournal/src/validation"
)

// TradeStore is the record-store contract the use cases depend on. Any
// conforming implementation (postgres, sqlite, an in-memory fixture) is
// substitutable. Not-found resolves to (nil, nil) / (false, nil) so it stays
// distinguishable from a storage failure.
type TradeStore interface {
	List(ctx context.Context, q repository.TradeListQuery) ([]model.Trade, error)
	GetByID(ctx context.Context, userID, id string) (*model.Trade, error)
	Create(ctx context.Context, trade *model.Trade) error
	Update(ctx context.Context, userID, id string, patch repository.TradePatch) (*model.Trade, error)
	Delete(ctx context.Context, userID, id string) (bool, error)
}

// SymbolValidator checks a symbol against an external market-data source.
type SymbolValidator interface {
	IsValid(ctx context.Context, symbol, assetType string) (bool, error)
}

// TradeService owns the journal use cases. Collaborators are injected;
// symbols may be nil, in which case symbol existence is not checked.
type TradeService struct {
	store   TradeStore
	symbols SymbolValidator
}

func NewTradeService(store TradeStore, symbols SymbolValidator) *TradeService {
	return &TradeService{store: store, symbols: symbols}
}

// List resolves a filtered, sorted, paginated listing of derived trades.
//
// Two execution strategies, chosen by the sort field: stored columns are
// pushed down to the store together with the page window, while a pnl sort
// cannot be (the store has no pnl column to rank by), so that path fetches
// the whole filtered candidate set, derives it, sorts it, and slices the
// page window only after the full sort.
func (s *TradeService) List(ctx context.Context, userID string, opts ListOptions) ([]model.DerivedTrade, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	offset := opts.Offset
	if offset < 0 {
		offset = 0
	}

	if opts.Sort != nil && opts.Sort.Field == SortFieldPnL {
		return s.listSortedByPnL(ctx, userID, opts.Filters, opts.Sort.Desc, limit, offset)
	}
	return s.listStoreNative(ctx, userID, opts.Filters, opts.Sort, limit, offset)
}

func (s *TradeService) listStoreNative(ctx context.Context, userID string, filters ListFilters, requested *ListSort, limit, offset int) ([]model.DerivedTrade, error) {
	storeSort := &repository.TradeSort{Field: repository.SortFieldExitDate, Desc: true}
	if requested != nil {
		storeSort = &repository.TradeSort{Field: requested.Field, Desc: requested.Desc}
	}

	trades, err := s.store.List(ctx, repository.TradeListQuery{
		UserID:  userID,
		Filters: toStoreFilters(filters),
		Sort:    storeSort,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, fmt.Errorf("listing trades: %w", err)
	}
	return analytics.DeriveAll(trades), nil
}

func (s *TradeService) listSortedByPnL(ctx context.Context, userID string, filters ListFilters, desc bool, limit, offset int) ([]model.DerivedTrade, error) {
	// Filters only: no store ordering and no store pagination, or the page
	// would be cut from candidates that were never ranked.
	trades, err := s.store.List(ctx, repository.TradeListQuery{
		UserID:  userID,
		Filters: toStoreFilters(filters),
	})
	if err != nil {
		return nil, fmt.Errorf("listing trades: %w", err)
	}

	derived := analytics.DeriveAll(trades)
	sort.SliceStable(derived, func(i, j int) bool {
		if desc {
			return derived[i].PnL > derived[j].PnL
		}
		return derived[i].PnL < derived[j].PnL
	})

	logger.WithFields(map[string]interface{}{
		"service":    "TradeService",
		"op":         "List",
		"strategy":   "in_memory_pnl",
		"candidates": len(derived),
	}).Debug("Sorted derived trades in memory")

	// The window slices the fully-sorted set, never a pre-trimmed fetch.
	if offset >= len(derived) {
		return []model.DerivedTrade{}, nil
	}
	end := offset + limit
	if end > len(derived) {
		end = len(derived)
	}
	return derived[offset:end], nil
}

// Stats aggregates the full filtered trade set into summary statistics and
// the cumulative equity curve. Pagination does not apply here; the numbers
// describe everything matching the filters.
func (s *TradeService) Stats(ctx context.Context, userID string, filters ListFilters) (model.TradeStats, []model.EquityPoint, error) {
	trades, err := s.store.List(ctx, repository.TradeListQuery{
		UserID:  userID,
		Filters: toStoreFilters(filters),
	})
	if err != nil {
		return model.TradeStats{}, nil, fmt.Errorf("listing trades for stats: %w", err)
	}

	derived := analytics.DeriveAll(trades)
	return analytics.ComputeStats(derived), analytics.ComputeEquityCurve(derived), nil
}

// Get fetches one derived trade. Returns apperrors.ErrNotFound when the id
// does not belong to the user's journal.
func (s *TradeService) Get(ctx context.Context, userID, id string) (*model.DerivedTrade, error) {
	trade, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("loading trade: %w", err)
	}
	if trade == nil {
		return nil, apperrors.ErrNotFound
	}
	derived := analytics.Derive(*trade)
	return &derived, nil
}

// Create validates the payload, optionally checks the symbol against the
// market-data source, and persists the trade. Validation failures never
// reach the store.
func (s *TradeService) Create(ctx context.Context, userID string, payload model.CreateTradePayload) (*model.DerivedTrade, error) {
	validated, verr := validation.ValidateCreate(payload)
	if verr != nil {
		return nil, verr
	}

	if err := s.checkSymbol(ctx, validated.Symbol, validated.AssetType); err != nil {
		return nil, err
	}

	trade := &model.Trade{
		UserID:       userID,
		Symbol:       validated.Symbol,
		AssetType:    validated.AssetType,
		Side:         validated.Side,
		EntryDate:    validated.EntryDate,
		ExitDate:     validated.ExitDate,
		EntryPrice:   validated.EntryPrice,
		ExitPrice:    validated.ExitPrice,
		PositionSize: validated.PositionSize,
		Fees:         validated.Fees,
		Notes:        validated.Notes,
	}
	if err := s.store.Create(ctx, trade); err != nil {
		return nil, fmt.Errorf("creating trade: %w", err)
	}

	derived := analytics.Derive(*trade)
	return &derived, nil
}

// Update validates the partial payload, merges it onto the stored record to
// re-check the entry/exit pair, and applies the patch. A patch carrying only
// one of the two dates is therefore still checked against the stored other
// side; an update can never leave a trade with exit before entry.
func (s *TradeService) Update(ctx context.Context, userID, id string, payload model.UpdateTradePayload) (*model.DerivedTrade, error) {
	patch, verr := validation.ValidateUpdate(payload)
	if verr != nil {
		return nil, verr
	}

	existing, err := s.store.GetByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("loading trade: %w", err)
	}
	if existing == nil {
		return nil, apperrors.ErrNotFound
	}

	entry := existing.EntryDate
	if patch.EntryDate != nil {
		entry = *patch.EntryDate
	}
	exit := existing.ExitDate
	if patch.ExitDate != nil {
		exit = *patch.ExitDate
	}
	if verr := validation.CheckDateOrder(entry, exit); verr != nil {
		return nil, verr
	}

	if patch.Symbol != nil && patch.AssetType != nil {
		if err := s.checkSymbol(ctx, *patch.Symbol, *patch.AssetType); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.Update(ctx, userID, id, toStorePatch(*patch))
	if err != nil {
		return nil, fmt.Errorf("updating trade: %w", err)
	}
	if updated == nil {
		return nil, apperrors.ErrNotFound
	}

	derived := analytics.Derive(*updated)
	return &derived, nil
}

// Delete removes a trade. A missing id yields (false, nil), not an error.
func (s *TradeService) Delete(ctx context.Context, userID, id string) (bool, error) {
	deleted, err := s.store.Delete(ctx, userID, id)
	if err != nil {
		return false, fmt.Errorf("deleting trade: %w", err)
	}
	return deleted, nil
}

func (s *TradeService) checkSymbol(ctx context.Context, symbol, assetType string) error {
	if s.symbols == nil {
		return nil
	}
	valid, err := s.symbols.IsValid(ctx, symbol, assetType)
	if err != nil {
		return fmt.Errorf("validating symbol: %w", err)
	}
	if !valid {
		verr := &apperrors.ValidationErrors{}
		verr.Add("symbol", fmt.Sprintf("symbol %q is not a known %s", symbol, assetType))
		return verr
	}
	return nil
}

func toStoreFilters(filters ListFilters) repository.TradeFilters {
	return repository.TradeFilters{
		Symbol:    filters.Symbol,
		AssetType: filters.AssetType,
		DateFrom:  filters.DateFrom,
		DateTo:    filters.DateTo,
	}
}

func toStorePatch(patch validation.ValidatedPatch) repository.TradePatch {
	return repository.TradePatch{
		Symbol:       patch.Symbol,
		AssetType:    patch.AssetType,
		Side:         patch.Side,
		EntryDate:    patch.EntryDate,
		ExitDate:     patch.ExitDate,
		EntryPrice:   patch.EntryPrice,
		ExitPrice:    patch.ExitPrice,
		PositionSize: patch.PositionSize,
		Fees:         patch.Fees,
		Notes:        patch.Notes,
		ClearNotes:   patch.ClearNotes,
	}
}
