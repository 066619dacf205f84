package handler

import (
	"context"
	"net/http"

	"tradejournal/src/auth"
	"tradejournal/src/model"
	"tradejournal/src/service"
)

type statsProvider interface {
	Stats(ctx context.Context, userID string, filters service.ListFilters) (model.TradeStats, []model.EquityPoint, error)
}

// StatsHandler aggregates the full filtered trade set into summary
// statistics and the equity curve. Accepts the same filter parameters as the
// listing endpoint; sort and pagination do not apply to aggregates.
func StatsHandler(svc statsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		query := r.URL.Query()
		opts, err := service.ParseListRequest(service.ListRequest{
			Symbol:    query.Get("symbol"),
			AssetType: query.Get("assetType"),
			DateFrom:  query.Get("dateFrom"),
			DateTo:    query.Get("dateTo"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		stats, curve, err := svc.Stats(r.Context(), user.ID, opts.Filters)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"stats":        stats,
			"equity_curve": curve,
		})
	}
}
