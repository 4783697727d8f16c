// Package export renders unified transaction lists into the two CSV
// dialects the downloader produces: a verbose generic export and the
// BudgetBakers import format.
package export

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mikeseventeen/coverflex-downloader/internal/coverflex"
)

// GenericHeader is the header row of the generic CSV dialect.
const GenericHeader = "id,date,type,status,merchant,amount,currency,is_debit,category,product,voucher_count,voucher_amount,rejection_reason"

const (
	genericNumFields   = 13
	colID              = 0
	colDate            = 1
	colType            = 2
	colStatus          = 3
	colMerchant        = 4
	colAmount          = 5
	colCurrency        = 6
	colIsDebit         = 7
	colCategory        = 8
	colProduct         = 9
	colVoucherCount    = 10
	colVoucherAmount   = 11
	colRejectionReason = 12
)

const isoDateFormat = "2006-01-02"

// centsToDisplay renders a minor-unit amount with exactly two decimal
// places, e.g. 1200 -> "12.00".
func centsToDisplay(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

// payee resolves the merchant column: merchant name unless absent or the
// upstream "unknown" placeholder, then the budget's display name, then the
// free-text description. The literal "unknown" check mirrors a placeholder
// value the API itself emits.
func payee(op coverflex.Operation) string {
	if op.MerchantName != "" && !strings.EqualFold(op.MerchantName, "unknown") {
		return op.MerchantName
	}
	if name := op.BudgetName(); name != "" {
		return name
	}
	return op.Description
}

// marshalGenericRow converts one transaction to a generic CSV row.
func marshalGenericRow(tx coverflex.Transaction) []string {
	row := make([]string, genericNumFields)
	row[colID] = tx.ID
	if !tx.ExecutedAt.IsZero() {
		// Date component of the stored instant, no local conversion.
		row[colDate] = tx.ExecutedAt.UTC().Format(isoDateFormat)
	}
	row[colType] = tx.Type
	row[colStatus] = tx.Status
	row[colMerchant] = payee(tx.Operation)

	if tx.Amount != nil && tx.Amount.Amount != 0 {
		amount := centsToDisplay(tx.Amount.Amount)
		if tx.IsDebit {
			amount = "-" + amount
		}
		row[colAmount] = amount
	}
	if tx.Amount != nil {
		row[colCurrency] = tx.Amount.Currency
	}

	row[colIsDebit] = strconv.FormatBool(tx.IsDebit)
	row[colCategory] = tx.CategorySlug
	row[colProduct] = tx.ProductSlug

	if tx.Voucher != nil {
		row[colVoucherCount] = strconv.Itoa(tx.Voucher.Count)
		if tx.Voucher.Amount != nil && tx.Voucher.Amount.Amount != 0 {
			row[colVoucherAmount] = centsToDisplay(tx.Voucher.Amount.Amount)
		}
	}

	row[colRejectionReason] = tx.RejectionReason()
	return row
}

// ToGenericCSV renders every transaction into the 13-column comma-separated
// dialect. Returns "" (no header) for an empty input.
func ToGenericCSV(txs []coverflex.Transaction) string {
	if len(txs) == 0 {
		return ""
	}

	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)
	_ = cw.Write(strings.Split(GenericHeader, ","))
	for _, tx := range txs {
		_ = cw.Write(marshalGenericRow(tx))
	}
	cw.Flush()

	return strings.TrimSuffix(buf.String(), "\n")
}
