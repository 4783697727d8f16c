package export

import (
	"fmt"

	"github.com/mikeseventeen/coverflex-downloader/internal/coverflex"
)

// Filename builds "<prefix>_<from>_<to>.csv" with date-only bounds.
func Filename(prefix string, r coverflex.DateRange) string {
	return fmt.Sprintf("%s_%s_%s.csv",
		prefix,
		r.From.UTC().Format(isoDateFormat),
		r.To.UTC().Format(isoDateFormat))
}

// GenericFilename names a generic-dialect export file.
func GenericFilename(r coverflex.DateRange) string {
	return Filename("coverflex-transactions", r)
}

// BudgetBakersFilename names a BudgetBakers-dialect export file.
func BudgetBakersFilename(r coverflex.DateRange) string {
	return Filename("coverflex-budgetbakers", r)
}
