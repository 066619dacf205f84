package validation

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"tradejournal/src/apperrors"
	"tradejournal/src/model"
)

// ValidatedTrade is a create payload with every field checked and normalized:
// symbol upper-cased, dates parsed, fees defaulted, blank notes dropped.
type ValidatedTrade struct {
	Symbol       string
	AssetType    string
	Side         string
	EntryDate    time.Time
	ExitDate     time.Time
	EntryPrice   float64
	ExitPrice    float64
	PositionSize float64
	Fees         float64
	Notes        *string
}

// ValidatedPatch mirrors UpdateTradePayload after per-field validation.
// nil still means "leave unchanged".
type ValidatedPatch struct {
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

// ValidateCreate checks a full create payload. All failures are aggregated
// into one ValidationErrors value instead of stopping at the first.
func ValidateCreate(payload model.CreateTradePayload) (*ValidatedTrade, *apperrors.ValidationErrors) {
	errs := &apperrors.ValidationErrors{}
	out := &ValidatedTrade{}

	out.Symbol = checkSymbol(payload.Symbol, errs)
	out.AssetType = checkEnum("asset_type", payload.AssetType, model.AssetTypes, errs)
	out.Side = checkEnum("side", payload.Side, model.Sides, errs)

	entry, entryOK := checkDate("entry_date", payload.EntryDate, errs)
	exit, exitOK := checkDate("exit_date", payload.ExitDate, errs)
	out.EntryDate = entry
	out.ExitDate = exit
	if entryOK && exitOK {
		checkDateOrder(entry, exit, errs)
	}

	out.EntryPrice = checkPositive("entry_price", payload.EntryPrice, errs)
	out.ExitPrice = checkPositive("exit_price", payload.ExitPrice, errs)
	out.PositionSize = checkPositive("position_size", payload.PositionSize, errs)

	if payload.Fees != nil {
		out.Fees = checkFees(*payload.Fees, errs)
	}
	out.Notes = checkNotes(payload.Notes, errs)

	if errs.HasErrors() {
		return nil, errs
	}
	return out, nil
}

// ValidateUpdate applies the same per-field rules to only the fields present
// in the partial payload. The entry/exit ordering rule fires only when the
// patch carries both dates; when it carries one, the caller must merge the
// patch onto the stored record and re-check the pair (see service.UpdateTrade).
func ValidateUpdate(payload model.UpdateTradePayload) (*ValidatedPatch, *apperrors.ValidationErrors) {
	errs := &apperrors.ValidationErrors{}
	out := &ValidatedPatch{}

	if payload.Symbol != nil {
		symbol := checkSymbol(*payload.Symbol, errs)
		out.Symbol = &symbol
	}
	if payload.AssetType != nil {
		assetType := checkEnum("asset_type", *payload.AssetType, model.AssetTypes, errs)
		out.AssetType = &assetType
	}
	if payload.Side != nil {
		side := checkEnum("side", *payload.Side, model.Sides, errs)
		out.Side = &side
	}

	var entry, exit time.Time
	entryOK, exitOK := false, false
	if payload.EntryDate != nil {
		entry, entryOK = checkDate("entry_date", *payload.EntryDate, errs)
		out.EntryDate = &entry
	}
	if payload.ExitDate != nil {
		exit, exitOK = checkDate("exit_date", *payload.ExitDate, errs)
		out.ExitDate = &exit
	}
	if entryOK && exitOK {
		checkDateOrder(entry, exit, errs)
	}

	if payload.EntryPrice != nil {
		price := checkPositive("entry_price", *payload.EntryPrice, errs)
		out.EntryPrice = &price
	}
	if payload.ExitPrice != nil {
		price := checkPositive("exit_price", *payload.ExitPrice, errs)
		out.ExitPrice = &price
	}
	if payload.PositionSize != nil {
		size := checkPositive("position_size", *payload.PositionSize, errs)
		out.PositionSize = &size
	}
	if payload.Fees != nil {
		fees := checkFees(*payload.Fees, errs)
		out.Fees = &fees
	}
	if payload.Notes != nil {
		out.Notes = checkNotes(payload.Notes, errs)
		out.ClearNotes = out.Notes == nil
	}

	if errs.HasErrors() {
		return nil, errs
	}
	return out, nil
}

// CheckDateOrder re-validates the entry/exit pair of a merged record. Used by
// the update use case after applying a partial patch to the stored trade.
func CheckDateOrder(entry, exit time.Time) *apperrors.ValidationErrors {
	errs := &apperrors.ValidationErrors{}
	checkDateOrder(entry, exit, errs)
	if errs.HasErrors() {
		return errs
	}
	return nil
}

func checkSymbol(raw string, errs *apperrors.ValidationErrors) string {
	symbol := strings.ToUpper(strings.TrimSpace(raw))
	if symbol == "" {
		errs.Add("symbol", "symbol is required")
	} else if len(symbol) > model.MaxSymbolLen {
		errs.Add("symbol", fmt.Sprintf("symbol must be at most %d characters", model.MaxSymbolLen))
	}
	return symbol
}

func checkEnum(field, value string, allowed []string, errs *apperrors.ValidationErrors) string {
	if !slices.Contains(allowed, value) {
		errs.Add(field, fmt.Sprintf("%s must be one of: %s", field, strings.Join(allowed, ", ")))
	}
	return value
}

func checkDate(field, value string, errs *apperrors.ValidationErrors) (time.Time, bool) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		errs.Add(field, fmt.Sprintf("%s must be a valid RFC3339 timestamp", field))
		return time.Time{}, false
	}
	return parsed, true
}

func checkDateOrder(entry, exit time.Time, errs *apperrors.ValidationErrors) {
	if exit.Before(entry) {
		errs.Add("exit_date", "exit date must be on or after entry date")
	}
}

func checkPositive(field string, value float64, errs *apperrors.ValidationErrors) float64 {
	if value <= 0 {
		errs.Add(field, fmt.Sprintf("%s must be positive", field))
	}
	return value
}

func checkFees(fees float64, errs *apperrors.ValidationErrors) float64 {
	if fees < 0 {
		errs.Add("fees", "fees must be zero or greater")
	}
	return fees
}

func checkNotes(notes *string, errs *apperrors.ValidationErrors) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	if len(trimmed) > model.MaxNotesLen {
		errs.Add("notes", fmt.Sprintf("notes must be at most %d characters", model.MaxNotesLen))
	}
	return &trimmed
}
