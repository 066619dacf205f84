package analytics

import (
	"github.com/shopspring/decimal"

	"tradejournal/src/model"
)

var hundred = decimal.NewFromInt(100)

// Derive computes the performance fields for a single closed trade.
// Long: (exit - entry) * size - fees. Short: (entry - exit) * size - fees.
// Inputs are assumed already validated; the function is pure and total.
func Derive(t model.Trade) model.DerivedTrade {
	pnl := netPnL(t)

	// Cost basis is structurally positive for validated trades, but legacy
	// rows may carry malformed values; percent falls back to 0 rather than
	// dividing by zero.
	costBasis := decimal.NewFromFloat(t.EntryPrice).Mul(decimal.NewFromFloat(t.PositionSize))
	pnlPercent := decimal.Zero
	if costBasis.IsPositive() {
		pnlPercent = pnl.Div(costBasis).Mul(hundred)
	}

	return model.DerivedTrade{
		Trade:         t,
		PnL:           pnl.InexactFloat64(),
		PnLPercent:    pnlPercent.InexactFloat64(),
		HoldingTimeMs: t.ExitDate.Sub(t.EntryDate).Milliseconds(),
	}
}

// DeriveAll maps Derive over a fetched page of trades.
func DeriveAll(trades []model.Trade) []model.DerivedTrade {
	derived := make([]model.DerivedTrade, 0, len(trades))
	for _, t := range trades {
		derived = append(derived, Derive(t))
	}
	return derived
}

func netPnL(t model.Trade) decimal.Decimal {
	entry := decimal.NewFromFloat(t.EntryPrice)
	exit := decimal.NewFromFloat(t.ExitPrice)
	size := decimal.NewFromFloat(t.PositionSize)

	gross := exit.Sub(entry).Mul(size)
	if t.Side == model.SideShort {
		gross = entry.Sub(exit).Mul(size)
	}
	return gross.Sub(decimal.NewFromFloat(t.Fees))
}
