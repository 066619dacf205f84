package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AssetTypeStock  = "stock"
	AssetTypeCrypto = "crypto"
	AssetTypeForex  = "forex"
	AssetTypeIndex  = "index"
	AssetTypeOther  = "other"

	SideLong  = "long"
	SideShort = "short"
)

// AssetTypes lists every accepted asset class.
var AssetTypes = []string{AssetTypeStock, AssetTypeCrypto, AssetTypeForex, AssetTypeIndex, AssetTypeOther}

// Sides lists every accepted trade direction.
var Sides = []string{SideLong, SideShort}

const (
	MaxSymbolLen = 20
	MaxNotesLen  = 1000
)

// Trade represents a single closed trade recorded in the journal.
// Only raw execution data is persisted; PnL and friends are derived at read
// time so they can never drift from the source fields.
type Trade struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Symbol       string    `gorm:"size:20;index;not null" json:"symbol"`
	AssetType    string    `gorm:"size:20;not null" json:"asset_type"`
	Side         string    `gorm:"size:10;not null" json:"side"`
	EntryDate    time.Time `gorm:"not null" json:"entry_date"`
	ExitDate     time.Time `gorm:"index;not null" json:"exit_date"`
	EntryPrice   float64   `gorm:"not null" json:"entry_price"`
	ExitPrice    float64   `gorm:"not null" json:"exit_price"`
	PositionSize float64   `gorm:"not null" json:"position_size"`
	Fees         float64   `gorm:"not null" json:"fees"`
	Notes        *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName controls the exact table name for trades.
func (Trade) TableName() string {
	return "trades"
}

// BeforeCreate assigns a uuid primary key when the store has not.
func (t *Trade) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// DerivedTrade is a Trade plus its computed performance fields. Never
// persisted; it exists only for the duration of a query/response cycle.
type DerivedTrade struct {
	Trade
	PnL           float64 `json:"pnl"`
	PnLPercent    float64 `json:"pnl_percent"`
	HoldingTimeMs int64   `json:"holding_time_ms"`
}

// TradeStats aggregates a set of derived trades. Ratio fields are nil (not
// zero) when their denominator is undefined for the input.
type TradeStats struct {
	NetPnL           float64  `json:"net_pnl"`
	WinRate          *float64 `json:"win_rate"`
	AvgPnL           float64  `json:"avg_pnl"`
	AvgReturnPercent float64  `json:"avg_return_percent"`
	ProfitFactor     *float64 `json:"profit_factor"`
	Wins             int      `json:"wins"`
	Losses           int      `json:"losses"`
	TotalTrades      int      `json:"total_trades"`
}

// EquityPoint is one step of the cumulative PnL curve, ordered by exit date.
type EquityPoint struct {
	Date          time.Time `json:"date"`
	CumulativePnL float64   `json:"cumulative_pnl"`
}

// CreateTradePayload is the raw create input before validation.
type CreateTradePayload struct {
	Symbol       string  `json:"symbol"`
	AssetType    string  `json:"asset_type"`
	Side         string  `json:"side"`
	EntryDate    string  `json:"entry_date"`
	ExitDate     string  `json:"exit_date"`
	EntryPrice   float64 `json:"entry_price"`
	ExitPrice    float64 `json:"exit_price"`
	PositionSize float64 `json:"position_size"`
	Fees         *float64 `json:"fees,omitempty"`
	Notes        *string `json:"notes,omitempty"`
}

// UpdateTradePayload is a partial patch; nil means "leave unchanged".
type UpdateTradePayload struct {
	Symbol       *string  `json:"symbol,omitempty"`
	AssetType    *string  `json:"asset_type,omitempty"`
	Side         *string  `json:"side,omitempty"`
	EntryDate    *string  `json:"entry_date,omitempty"`
	ExitDate     *string  `json:"exit_date,omitempty"`
	EntryPrice   *float64 `json:"entry_price,omitempty"`
	ExitPrice    *float64 `json:"exit_price,omitempty"`
	PositionSize *float64 `json:"position_size,omitempty"`
	Fees         *float64 `json:"fees,omitempty"`
	Notes        *string  `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch carries no fields at all.
func (p UpdateTradePayload) IsEmpty() bool {
	return p.Symbol == nil && p.AssetType == nil && p.Side == nil &&
		p.EntryDate == nil && p.ExitDate == nil && p.EntryPrice == nil &&
		p.ExitPrice == nil && p.PositionSize == nil && p.Fees == nil && p.Notes == nil
}
