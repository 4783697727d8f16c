package export

import "github.com/mikeseventeen/coverflex-downloader/internal/coverflex"

// FilterOptions control which records survive the pre-projection filter.
type FilterOptions struct {
	IncludeTopups   bool
	IncludeRejected bool
}

// Filter drops topups and rejected records unless opted in. Filtering
// happens before projection so both dialects see the same record set.
func Filter(txs []coverflex.Transaction, opts FilterOptions) []coverflex.Transaction {
	out := make([]coverflex.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !opts.IncludeTopups && tx.Type == coverflex.TypeTopup {
			continue
		}
		if !opts.IncludeRejected && tx.Status == coverflex.StatusRejected {
			continue
		}
		out = append(out, tx)
	}
	return out
}
