package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikeseventeen/coverflex-downloader/internal/coverflex"
)

func TestFilterDefaults(t *testing.T) {
	topup := benefitTx("op-topup", 5000, false)
	topup.Type = coverflex.TypeTopup
	rejected := benefitTx("op-rejected", 1200, true)
	rejected.Status = coverflex.StatusRejected
	keep := benefitTx("op-keep", 800, true)

	txs := []coverflex.Transaction{topup, rejected, keep}

	got := Filter(txs, FilterOptions{})
	require.Len(t, got, 1)
	assert.Equal(t, "op-keep", got[0].ID)
}

func TestFilterOptIn(t *testing.T) {
	topup := benefitTx("op-topup", 5000, false)
	topup.Type = coverflex.TypeTopup
	rejected := benefitTx("op-rejected", 1200, true)
	rejected.Status = coverflex.StatusRejected

	txs := []coverflex.Transaction{topup, rejected}

	got := Filter(txs, FilterOptions{IncludeTopups: true})
	require.Len(t, got, 1)
	assert.Equal(t, "op-topup", got[0].ID)

	got = Filter(txs, FilterOptions{IncludeTopups: true, IncludeRejected: true})
	assert.Len(t, got, 2)
}
