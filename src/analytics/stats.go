package analytics

import (
	"sort"

	"tradejournal/src/model"
)

// ComputeStats aggregates a set of derived trades into summary statistics.
// Every ratio guards its own zero denominator: win rate is nil when no trade
// has nonzero PnL, profit factor is nil when there are no losses, and the
// averages are 0 on empty input.
func ComputeStats(trades []model.DerivedTrade) model.TradeStats {
	stats := model.TradeStats{TotalTrades: len(trades)}
	if len(trades) == 0 {
		return stats
	}

	var sumWins, sumLosses, sumPercent float64
	for _, t := range trades {
		stats.NetPnL += t.PnL
		sumPercent += t.PnLPercent
		switch {
		case t.PnL > 0:
			stats.Wins++
			sumWins += t.PnL
		case t.PnL < 0:
			stats.Losses++
			sumLosses += -t.PnL
		}
	}

	if decided := stats.Wins + stats.Losses; decided > 0 {
		rate := float64(stats.Wins) / float64(decided)
		stats.WinRate = &rate
	}
	if sumLosses > 0 {
		factor := sumWins / sumLosses
		stats.ProfitFactor = &factor
	}
	stats.AvgPnL = stats.NetPnL / float64(stats.TotalTrades)
	stats.AvgReturnPercent = sumPercent / float64(stats.TotalTrades)

	return stats
}

// ComputeEquityCurve produces the running cumulative PnL ordered by exit
// date ascending, one point per trade. The input is copied before sorting so
// the caller's ordering survives; no pre-sorted input is assumed.
func ComputeEquityCurve(trades []model.DerivedTrade) []model.EquityPoint {
	if len(trades) == 0 {
		return []model.EquityPoint{}
	}

	sorted := make([]model.DerivedTrade, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ExitDate.Before(sorted[j].ExitDate)
	})

	curve := make([]model.EquityPoint, 0, len(sorted))
	var cumulative float64
	for _, t := range sorted {
		cumulative += t.PnL
		curve = append(curve, model.EquityPoint{Date: t.ExitDate, CumulativePnL: cumulative})
	}
	return curve
}
