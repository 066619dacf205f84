package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/src/apperrors"
)

func TestParseListRequestDefaults(t *testing.T) {
	opts, err := ParseListRequest(ListRequest{})
	require.NoError(t, err)

	assert.Equal(t, DefaultLimit, opts.Limit)
	assert.Equal(t, 0, opts.Offset)
	assert.Nil(t, opts.Sort)
	assert.Nil(t, opts.Filters.DateFrom)
}

func TestParseListRequestFull(t *testing.T) {
	opts, err := ParseListRequest(ListRequest{
		Symbol:    "AAPL",
		AssetType: "stock",
		DateFrom:  "2024-01-01T00:00:00Z",
		DateTo:    "2024-06-30T23:59:59Z",
		SortField: "pnl",
		SortOrder: "asc",
		Limit:     "25",
		Offset:    "50",
	})
	require.NoError(t, err)

	assert.Equal(t, "AAPL", opts.Filters.Symbol)
	assert.Equal(t, "stock", opts.Filters.AssetType)
	require.NotNil(t, opts.Filters.DateFrom)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *opts.Filters.DateFrom)
	require.NotNil(t, opts.Sort)
	assert.Equal(t, SortFieldPnL, opts.Sort.Field)
	assert.False(t, opts.Sort.Desc)
	assert.Equal(t, 25, opts.Limit)
	assert.Equal(t, 50, opts.Offset)
}

func TestParseListRequestSortFieldAliases(t *testing.T) {
	for wire, want := range map[string]string{
		"entryTimestamp": SortFieldEntryDate,
		"exitTimestamp":  SortFieldExitDate,
		"entry_date":     SortFieldEntryDate,
		"exit_date":      SortFieldExitDate,
	} {
		opts, err := ParseListRequest(ListRequest{SortField: wire})
		require.NoError(t, err, wire)
		require.NotNil(t, opts.Sort)
		assert.Equal(t, want, opts.Sort.Field)
		assert.True(t, opts.Sort.Desc) // order defaults to descending
	}
}

func TestParseListRequestMalformed(t *testing.T) {
	tests := []struct {
		name      string
		req       ListRequest
		wantField string
	}{
		{"bad dateFrom", ListRequest{DateFrom: "03/01/2024"}, "dateFrom"},
		{"bad dateTo", ListRequest{DateTo: "yesterday"}, "dateTo"},
		{"unknown sort field", ListRequest{SortField: "fees"}, "sortField"},
		{"bad sort order", ListRequest{SortField: "pnl", SortOrder: "sideways"}, "sortOrder"},
		{"order without field", ListRequest{SortOrder: "asc"}, "sortOrder"},
		{"non-numeric limit", ListRequest{Limit: "ten"}, "limit"},
		{"zero limit", ListRequest{Limit: "0"}, "limit"},
		{"negative offset", ListRequest{Offset: "-1"}, "offset"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseListRequest(tt.req)
			require.Error(t, err)

			qerr, ok := apperrors.AsMalformedQueryError(err)
			require.True(t, ok)
			assert.Equal(t, tt.wantField, qerr.Field)
			assert.Contains(t, qerr.Error(), tt.wantField)
		})
	}
}
