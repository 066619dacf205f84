package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tradejournal/src/apperrors"
	"tradejournal/src/model"
)

func validCreatePayload() model.CreateTradePayload {
	return model.CreateTradePayload{
		Symbol:       "aapl",
		AssetType:    model.AssetTypeStock,
		Side:         model.SideLong,
		EntryDate:    "2024-03-01T10:00:00Z",
		ExitDate:     "2024-03-03T10:00:00Z",
		EntryPrice:   100,
		ExitPrice:    120,
		PositionSize: 10,
	}
}

func fieldsOf(errs *apperrors.ValidationErrors) []string {
	fields := make([]string, 0, len(errs.Issues))
	for _, issue := range errs.Issues {
		fields = append(fields, issue.Field)
	}
	return fields
}

func TestValidateCreateNormalizes(t *testing.T) {
	payload := validCreatePayload()
	payload.Symbol = "  aapl "
	notes := "   "
	payload.Notes = &notes

	validated, errs := ValidateCreate(payload)

	require.Nil(t, errs)
	assert.Equal(t, "AAPL", validated.Symbol)
	assert.Equal(t, 0.0, validated.Fees) // defaulted when absent
	assert.Nil(t, validated.Notes)       // blank after trim is dropped
	assert.Equal(t, time.Date(2024, time.March, 1, 10, 0, 0, 0, time.UTC), validated.EntryDate)
}

func TestValidateCreateRejectsExitBeforeEntry(t *testing.T) {
	payload := validCreatePayload()
	payload.ExitDate = "2024-02-01T10:00:00Z"

	_, errs := ValidateCreate(payload)

	require.NotNil(t, errs)
	assert.Contains(t, fieldsOf(errs), "exit_date")
}

func TestValidateCreateAcceptsEqualDates(t *testing.T) {
	payload := validCreatePayload()
	payload.ExitDate = payload.EntryDate

	_, errs := ValidateCreate(payload)

	assert.Nil(t, errs)
}

func TestValidateCreateAggregatesAllFailures(t *testing.T) {
	payload := model.CreateTradePayload{
		Symbol:       "",
		AssetType:    "bond",
		Side:         "sideways",
		EntryDate:    "not-a-date",
		ExitDate:     "also-not-a-date",
		EntryPrice:   0,
		ExitPrice:    -3,
		PositionSize: 0,
	}

	_, errs := ValidateCreate(payload)

	require.NotNil(t, errs)
	fields := fieldsOf(errs)
	for _, want := range []string{"symbol", "asset_type", "side", "entry_date", "exit_date", "entry_price", "exit_price", "position_size"} {
		assert.Contains(t, fields, want)
	}
}

func TestValidateCreateFieldRules(t *testing.T) {
	negativeFees := -1.0
	longSymbol := strings.Repeat("X", model.MaxSymbolLen+1)
	longNotes := strings.Repeat("n", model.MaxNotesLen+1)

	tests := []struct {
		name      string
		mutate    func(*model.CreateTradePayload)
		wantField string
	}{
		{"symbol too long", func(p *model.CreateTradePayload) { p.Symbol = longSymbol }, "symbol"},
		{"unknown asset type", func(p *model.CreateTradePayload) { p.AssetType = "commodity" }, "asset_type"},
		{"unknown side", func(p *model.CreateTradePayload) { p.Side = "flat" }, "side"},
		{"zero entry price", func(p *model.CreateTradePayload) { p.EntryPrice = 0 }, "entry_price"},
		{"negative exit price", func(p *model.CreateTradePayload) { p.ExitPrice = -1 }, "exit_price"},
		{"zero position size", func(p *model.CreateTradePayload) { p.PositionSize = 0 }, "position_size"},
		{"negative fees", func(p *model.CreateTradePayload) { p.Fees = &negativeFees }, "fees"},
		{"notes too long", func(p *model.CreateTradePayload) { p.Notes = &longNotes }, "notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := validCreatePayload()
			tt.mutate(&payload)

			_, errs := ValidateCreate(payload)

			require.NotNil(t, errs)
			assert.Contains(t, fieldsOf(errs), tt.wantField)
		})
	}
}

func TestValidateCreateAcceptsZeroFees(t *testing.T) {
	payload := validCreatePayload()
	zero := 0.0
	payload.Fees = &zero

	validated, errs := ValidateCreate(payload)

	require.Nil(t, errs)
	assert.Equal(t, 0.0, validated.Fees)
}

func TestValidateUpdateChecksOnlyPresentFields(t *testing.T) {
	symbol := " msft "
	patch, errs := ValidateUpdate(model.UpdateTradePayload{Symbol: &symbol})

	require.Nil(t, errs)
	require.NotNil(t, patch.Symbol)
	assert.Equal(t, "MSFT", *patch.Symbol)
	assert.Nil(t, patch.EntryDate)
	assert.Nil(t, patch.Fees)
}

func TestValidateUpdateRejectsBadField(t *testing.T) {
	badPrice := -5.0
	_, errs := ValidateUpdate(model.UpdateTradePayload{EntryPrice: &badPrice})

	require.NotNil(t, errs)
	assert.Contains(t, fieldsOf(errs), "entry_price")
}

func TestValidateUpdateDatePairRule(t *testing.T) {
	entry := "2024-03-05T00:00:00Z"
	exit := "2024-03-01T00:00:00Z"

	_, errs := ValidateUpdate(model.UpdateTradePayload{EntryDate: &entry, ExitDate: &exit})
	require.NotNil(t, errs)
	assert.Contains(t, fieldsOf(errs), "exit_date")

	// With only one date in the patch, the pair rule is the caller's job
	// (the service merges onto the stored record and re-checks).
	_, errs = ValidateUpdate(model.UpdateTradePayload{ExitDate: &exit})
	assert.Nil(t, errs)
}

func TestValidateUpdateBlankNotesClears(t *testing.T) {
	blank := "  "
	patch, errs := ValidateUpdate(model.UpdateTradePayload{Notes: &blank})

	require.Nil(t, errs)
	assert.Nil(t, patch.Notes)
	assert.True(t, patch.ClearNotes)
}

func TestCheckDateOrder(t *testing.T) {
	entry := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, CheckDateOrder(entry, entry))
	assert.Nil(t, CheckDateOrder(entry, entry.Add(time.Hour)))
	assert.NotNil(t, CheckDateOrder(entry, entry.Add(-time.Hour)))
}
