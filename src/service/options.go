package service

import (
	"strconv"
	"time"

	"tradejournal/src/apperrors"
)

const (
	SortFieldEntryDate = "entry_date"
	SortFieldExitDate  = "exit_date"
	SortFieldPnL       = "pnl"

	// DefaultLimit caps a listing when the caller does not ask for a page size.
	DefaultLimit = 500
)

// Accepted wire names for the sort field, including the camel-case aliases
// used by older clients.
var sortFieldNames = map[string]string{
	"entry_date":     SortFieldEntryDate,
	"entryTimestamp": SortFieldEntryDate,
	"exit_date":      SortFieldExitDate,
	"exitTimestamp":  SortFieldExitDate,
	"pnl":            SortFieldPnL,
}

// ListFilters narrows a listing; zero values mean "no constraint".
// Date bounds apply to the exit date, inclusive.
type ListFilters struct {
	Symbol    string
	AssetType string
	DateFrom  *time.Time
	DateTo    *time.Time
}

// ListSort is a requested ordering. Field pnl triggers the in-memory
// execution strategy (see TradeService.List).
type ListSort struct {
	Field string
	Desc  bool
}

// ListOptions is a fully-parsed list query.
type ListOptions struct {
	Filters ListFilters
	Sort    *ListSort
	Limit   int
	Offset  int
}

// ListRequest is the raw transport shape of a list query, before any field
// has been interpreted. Empty strings mean "not supplied".
type ListRequest struct {
	Symbol    string
	AssetType string
	DateFrom  string
	DateTo    string
	SortField string
	SortOrder string
	Limit     string
	Offset    string
}

// ParseListRequest interprets a raw list request. Every malformed parameter
// is rejected with the offending field and the expected format before any
// store call can happen.
func ParseListRequest(req ListRequest) (ListOptions, error) {
	opts := ListOptions{Limit: DefaultLimit}

	opts.Filters.Symbol = req.Symbol
	opts.Filters.AssetType = req.AssetType

	if req.DateFrom != "" {
		parsed, err := time.Parse(time.RFC3339, req.DateFrom)
		if err != nil {
			return opts, &apperrors.MalformedQueryError{Field: "dateFrom", Value: req.DateFrom, Expected: "an RFC3339 timestamp"}
		}
		opts.Filters.DateFrom = &parsed
	}
	if req.DateTo != "" {
		parsed, err := time.Parse(time.RFC3339, req.DateTo)
		if err != nil {
			return opts, &apperrors.MalformedQueryError{Field: "dateTo", Value: req.DateTo, Expected: "an RFC3339 timestamp"}
		}
		opts.Filters.DateTo = &parsed
	}

	if req.SortField != "" {
		field, ok := sortFieldNames[req.SortField]
		if !ok {
			return opts, &apperrors.MalformedQueryError{Field: "sortField", Value: req.SortField, Expected: "one of entry_date, exit_date, pnl"}
		}
		desc := true
		switch req.SortOrder {
		case "", "desc":
		case "asc":
			desc = false
		default:
			return opts, &apperrors.MalformedQueryError{Field: "sortOrder", Value: req.SortOrder, Expected: "asc or desc"}
		}
		opts.Sort = &ListSort{Field: field, Desc: desc}
	} else if req.SortOrder != "" {
		return opts, &apperrors.MalformedQueryError{Field: "sortOrder", Value: req.SortOrder, Expected: "a sortField to apply it to"}
	}

	if req.Limit != "" {
		limit, err := strconv.Atoi(req.Limit)
		if err != nil || limit <= 0 {
			return opts, &apperrors.MalformedQueryError{Field: "limit", Value: req.Limit, Expected: "a positive integer"}
		}
		opts.Limit = limit
	}
	if req.Offset != "" {
		offset, err := strconv.Atoi(req.Offset)
		if err != nil || offset < 0 {
			return opts, &apperrors.MalformedQueryError{Field: "offset", Value: req.Offset, Expected: "a non-negative integer"}
		}
		opts.Offset = offset
	}

	return opts, nil
}
