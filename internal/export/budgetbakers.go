package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	"github.com/mikeseventeen/coverflex-downloader/internal/coverflex"
)

// BudgetBakersHeader is the header row of the BudgetBakers import format.
const BudgetBakersHeader = "Date;Amount;Payee;Note;Currency"

const bbDateFormat = "02/01/2006"

// note composes the Note column: a human label for the type, then the
// category, then the product when it differs from the category.
func note(op coverflex.Operation) string {
	var parts []string

	switch op.Type {
	case coverflex.TypeTopup:
		parts = append(parts, "Topup")
	case coverflex.TypeRefund:
		parts = append(parts, "Refund")
	case coverflex.TypeBenefitExpense:
		parts = append(parts, "Expense")
	}

	if op.CategorySlug != "" {
		parts = append(parts, op.CategorySlug)
	}
	if op.ProductSlug != "" && op.ProductSlug != op.CategorySlug {
		parts = append(parts, op.ProductSlug)
	}

	return strings.Join(parts, " - ")
}

// marshalBudgetBakersRow converts one transaction to a BudgetBakers row.
func marshalBudgetBakersRow(tx coverflex.Transaction) []string {
	amount := "0.00"
	if tx.Amount != nil && tx.Amount.Amount != 0 {
		amount = centsToDisplay(tx.Amount.Amount)
	}
	if tx.IsDebit {
		amount = "-" + amount
	}

	currency := "EUR"
	if tx.Amount != nil && tx.Amount.Currency != "" {
		currency = tx.Amount.Currency
	}

	var date string
	if !tx.ExecutedAt.IsZero() {
		// BudgetBakers wants the local calendar day, DD/MM/YYYY.
		date = tx.ExecutedAt.In(time.Local).Format(bbDateFormat)
	}

	return []string{date, amount, payee(tx.Operation), note(tx.Operation), currency}
}

// ToBudgetBakersCSV renders confirmed transactions into the 5-column
// semicolon-separated BudgetBakers import format. Rejected and pending
// records are dropped; if nothing survives the filter the result is ""
// with no header row.
func ToBudgetBakersCSV(txs []coverflex.Transaction) string {
	var confirmed []coverflex.Transaction
	for _, tx := range txs {
		if tx.Status == coverflex.StatusConfirmed {
			confirmed = append(confirmed, tx)
		}
	}
	if len(confirmed) == 0 {
		return ""
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	cw.Comma = ';'
	_ = cw.Write(strings.Split(BudgetBakersHeader, ";"))
	for _, tx := range confirmed {
		_ = cw.Write(marshalBudgetBakersRow(tx))
	}
	cw.Flush()

	return strings.TrimSuffix(buf.String(), "\n")
}
