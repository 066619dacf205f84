package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	logger "github.com/sirupsen/logrus"

	"tradejournal/src/auth"
	"tradejournal/src/model"
	"tradejournal/src/service"
)

type tradeLister interface {
	List(ctx context.Context, userID string, opts service.ListOptions) ([]model.DerivedTrade, error)
}

type tradeCreator interface {
	Create(ctx context.Context, userID string, payload model.CreateTradePayload) (*model.DerivedTrade, error)
}

type tradeGetter interface {
	Get(ctx context.Context, userID, id string) (*model.DerivedTrade, error)
}

type tradeUpdater interface {
	Update(ctx context.Context, userID, id string, payload model.UpdateTradePayload) (*model.DerivedTrade, error)
}

type tradeDeleter interface {
	Delete(ctx context.Context, userID, id string) (bool, error)
}

// ListTradesHandler returns the handler that lists derived trades for the
// authenticated user. Supports filters (symbol, assetType, dateFrom,
// dateTo), sorting (sortField, sortOrder) and pagination (limit, offset).
func ListTradesHandler(svc tradeLister) http.HandlerFunc {
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
			SortField: query.Get("sortField"),
			SortOrder: query.Get("sortOrder"),
			Limit:     query.Get("limit"),
			Offset:    query.Get("offset"),
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		trades, err := svc.List(r.Context(), user.ID, opts)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"trades": trades})
	}
}

// CreateTradeHandler validates and records a new trade.
func CreateTradeHandler(svc tradeCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var payload model.CreateTradePayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			logger.WithError(err).Warn("invalid create trade payload")
			writeError(w, http.StatusBadRequest, "Invalid payload")
			return
		}

		trade, err := svc.Create(r.Context(), user.ID, payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, map[string]interface{}{"trade": trade})
	}
}

// GetTradeHandler fetches one trade with its derived fields.
func GetTradeHandler(svc tradeGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		trade, err := svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"trade": trade})
	}
}

// UpdateTradeHandler applies a partial patch to an existing trade.
func UpdateTradeHandler(svc tradeUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var payload model.UpdateTradePayload
		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&payload); err != nil {
			logger.WithError(err).Warn("invalid update trade payload")
			writeError(w, http.StatusBadRequest, "Invalid payload")
			return
		}

		trade, err := svc.Update(r.Context(), user.ID, chi.URLParam(r, "id"), payload)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"trade": trade})
	}
}

// DeleteTradeHandler removes a trade by id.
func DeleteTradeHandler(svc tradeDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.GetUserFromContext(r.Context())
		if !ok || user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		deleted, err := svc.Delete(r.Context(), user.ID, chi.URLParam(r, "id"))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !deleted {
			writeError(w, http.StatusNotFound, "Trade not found")
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
