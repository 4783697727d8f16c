package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mikeseventeen/coverflex-downloader/internal/coverflex"
)

func TestFilenames(t *testing.T) {
	r := coverflex.DateRange{
		From: instant("2025-06-15T14:30:00.000Z"),
		To:   instant("2025-06-20T18:45:00.000Z"),
	}

	assert.Equal(t, "coverflex-transactions_2025-06-15_2025-06-20.csv", GenericFilename(r))
	assert.Equal(t, "coverflex-budgetbakers_2025-06-15_2025-06-20.csv", BudgetBakersFilename(r))
	assert.Equal(t, "custom_2025-06-15_2025-06-20.csv", Filename("custom", r))
}
