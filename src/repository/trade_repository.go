package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	logger "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"tradejournal/src/model"
)

const (
	SortFieldEntryDate = "entry_date"
	SortFieldExitDate  = "exit_date"
)

// Whitelist of sortable columns; anything else is rejected before it can
// reach the ORDER BY clause.
var sortColumns = map[string]string{
	SortFieldEntryDate: "entry_date",
	SortFieldExitDate:  "exit_date",
}

// TradeFilters narrows a listing. Date bounds apply to the exit date,
// inclusive on both ends.
type TradeFilters struct {
	Symbol    string
	AssetType string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// TradeSort is an ordering the store applies natively. Only stored columns
// qualify; derived values are sorted by the caller.
type TradeSort struct {
	Field string
	Desc  bool
}

// TradeListQuery describes one List call. A nil Sort leaves the store order
// unspecified; Limit <= 0 disables pagination pushdown entirely, which the
// query resolver relies on when it must rank the full candidate set itself.
type TradeListQuery struct {
	UserID  string
	Filters TradeFilters
	Sort    *TradeSort
	Limit   int
	Offset  int
}

// TradePatch is a partial column update. nil leaves the column unchanged;
// ClearNotes distinguishes "set notes to NULL" from "leave notes alone".
type TradePatch struct {
	Symbol       *string
	AssetType    *string
	Side         *string
	EntryDate    *time.Time
	ExitDate     *time.Time
	EntryPrice   *float64
	ExitPrice    *float64
	PositionSize *float64
	Fees         *float64
	Notes        *string
	ClearNotes   bool
}

// IsEmpty reports whether the patch would touch no columns.
func (p TradePatch) IsEmpty() bool {
	return p.Symbol == nil && p.AssetType == nil && p.Side == nil &&
		p.EntryDate == nil && p.ExitDate == nil && p.EntryPrice == nil &&
		p.ExitPrice == nil && p.PositionSize == nil && p.Fees == nil &&
		p.Notes == nil && !p.ClearNotes
}

// TradeRepository handles read/write operations for journal trades.
type TradeRepository struct {
	db *gorm.DB
}

// NewTradeRepository creates a repository bound to the given database handle.
// The handle is injected rather than read from a package global so tests and
// alternative stores can substitute their own.
func NewTradeRepository(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// WithDB returns a copy using a specific session or transaction.
func (r *TradeRepository) WithDB(db *gorm.DB) *TradeRepository {
	return &TradeRepository{db: db}
}

// List fetches trades matching the query. Filters always apply; ordering and
// pagination apply only when requested (see TradeListQuery).
func (r *TradeRepository) List(ctx context.Context, q TradeListQuery) ([]model.Trade, error) {
	logger.WithFields(map[string]interface{}{
		"repo":    "TradeRepository",
		"op":      "List",
		"user_id": q.UserID,
		"limit":   q.Limit,
		"offset":  q.Offset,
	}).Debug("Listing trades")

	tx := r.db.WithContext(ctx).Where("user_id = ?", q.UserID)

	if q.Filters.Symbol != "" {
		tx = tx.Where("symbol = ?", strings.ToUpper(strings.TrimSpace(q.Filters.Symbol)))
	}
	if q.Filters.AssetType != "" {
		tx = tx.Where("asset_type = ?", q.Filters.AssetType)
	}
	if q.Filters.DateFrom != nil {
		tx = tx.Where("exit_date >= ?", *q.Filters.DateFrom)
	}
	if q.Filters.DateTo != nil {
		tx = tx.Where("exit_date <= ?", *q.Filters.DateTo)
	}

	if q.Sort != nil {
		column, ok := sortColumns[q.Sort.Field]
		if !ok {
			return nil, fmt.Errorf("unsortable column %q", q.Sort.Field)
		}
		direction := "ASC"
		if q.Sort.Desc {
			direction = "DESC"
		}
		tx = tx.Order(column + " " + direction)
	}

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit).Offset(q.Offset)
	}

	var trades []model.Trade
	if err := tx.Find(&trades).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "List",
		}).WithError(err).Error("Failed to list trades")
		return nil, err
	}
	return trades, nil
}

// GetByID fetches a single trade owned by the given user.
// Returns (nil, nil) if the trade is not found.
func (r *TradeRepository) GetByID(ctx context.Context, userID, id string) (*model.Trade, error) {
	var trade model.Trade
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&trade).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "GetByID",
			"id":   id,
		}).WithError(err).Error("Failed to fetch trade")
		return nil, err
	}
	return &trade, nil
}

// Create inserts a new trade. The given trade is updated with the generated
// id and timestamps.
func (r *TradeRepository) Create(ctx context.Context, trade *model.Trade) error {
	logger.WithFields(map[string]interface{}{
		"repo":    "TradeRepository",
		"op":      "Create",
		"user_id": trade.UserID,
		"symbol":  trade.Symbol,
	}).Debug("Creating trade")

	if err := r.db.WithContext(ctx).Create(trade).Error; err != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Create",
		}).WithError(err).Error("Failed to create trade")
		return err
	}
	return nil
}

// Update applies a partial patch to a trade owned by the given user and
// returns the updated record. Returns (nil, nil) when no row matched.
func (r *TradeRepository) Update(ctx context.Context, userID, id string, patch TradePatch) (*model.Trade, error) {
	columns := patchColumns(patch)
	if len(columns) == 0 {
		return r.GetByID(ctx, userID, id)
	}

	res := r.db.WithContext(ctx).
		Model(&model.Trade{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(columns)
	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Update",
			"id":   id,
		}).WithError(res.Error).Error("Failed to update trade")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, userID, id)
}

// Delete removes a trade owned by the given user. Returns false when the id
// did not match any row, which is not an error.
func (r *TradeRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Trade{})
	if res.Error != nil {
		logger.WithFields(map[string]interface{}{
			"repo": "TradeRepository",
			"op":   "Delete",
			"id":   id,
		}).WithError(res.Error).Error("Failed to delete trade")
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func patchColumns(patch TradePatch) map[string]interface{} {
	columns := map[string]interface{}{}
	if patch.Symbol != nil {
		columns["symbol"] = strings.ToUpper(strings.TrimSpace(*patch.Symbol))
	}
	if patch.AssetType != nil {
		columns["asset_type"] = *patch.AssetType
	}
	if patch.Side != nil {
		columns["side"] = *patch.Side
	}
	if patch.EntryDate != nil {
		columns["entry_date"] = *patch.EntryDate
	}
	if patch.ExitDate != nil {
		columns["exit_date"] = *patch.ExitDate
	}
	if patch.EntryPrice != nil {
		columns["entry_price"] = *patch.EntryPrice
	}
	if patch.ExitPrice != nil {
		columns["exit_price"] = *patch.ExitPrice
	}
	if patch.PositionSize != nil {
		columns["position_size"] = *patch.PositionSize
	}
	if patch.Fees != nil {
		columns["fees"] = *patch.Fees
	}
	if patch.ClearNotes {
		columns["notes"] = gorm.Expr("NULL")
	} else if patch.Notes != nil {
		columns["notes"] = *patch.Notes
	}
	return columns
}
