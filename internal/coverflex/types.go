package coverflex

import "time"

// Source tags which endpoint a transaction came from. The raw API records do
// not self-identify this, so the aggregator assigns it.
type Source string

const (
	SourceBenefits Source = "benefits"
	SourceMeals    Source = "meals"
)

// Operation statuses reported by the API.
const (
	StatusConfirmed = "confirmed"
	StatusRejected  = "rejected"
	StatusPending   = "pending"
)

// Operation types reported by the API.
const (
	TypeTopup          = "topup"
	TypeRefund         = "refund"
	TypeBenefitExpense = "benefit_expense"
)

// Money is a monetary value in minor units (cents).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Voucher is the optional meal-voucher sub-record on an operation.
type Voucher struct {
	Count  int    `json:"count"`
	Amount *Money `json:"amount"`
}

// DescriptionParam is one key/value pair from an operation's
// description_params list. The API uses it to carry details like the
// rejection reason.
type DescriptionParam struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Budget is the allocation an operation was charged against.
type Budget struct {
	Name string `json:"name"`
}

// BudgetEmployee links an operation to the employee's budget.
type BudgetEmployee struct {
	Budget *Budget `json:"budget"`
}

// Operation is the raw record shape shared by the benefit-operations and
// meal-movements endpoints.
type Operation struct {
	ID                string             `json:"id"`
	ExecutedAt        time.Time          `json:"executed_at"`
	Type              string             `json:"type"`
	Status            string             `json:"status"`
	Amount            *Money             `json:"amount"`
	IsDebit           bool               `json:"is_debit"`
	MerchantName      string             `json:"merchant_name"`
	Description       string             `json:"description"`
	CategorySlug      string             `json:"category_slug"`
	ProductSlug       string             `json:"product_slug"`
	Voucher           *Voucher           `json:"voucher"`
	DescriptionParams []DescriptionParam `json:"description_params"`
	BudgetEmployee    *BudgetEmployee    `json:"budget_employee"`
}

// BudgetName returns the display name of the budget the operation was
// charged against, or "" when none is attached.
func (op Operation) BudgetName() string {
	if op.BudgetEmployee == nil || op.BudgetEmployee.Budget == nil {
		return ""
	}
	return op.BudgetEmployee.Budget.Name
}

// RejectionReason returns the rejection_reason description param, or "".
func (op Operation) RejectionReason() string {
	for _, p := range op.DescriptionParams {
		if p.Key == "rejection_reason" {
			return p.Value
		}
	}
	return ""
}

// Transaction is the unified record the aggregator produces: a raw operation
// plus the source tag of the endpoint it came from.
type Transaction struct {
	Operation
	Source Source
}

// Pocket is a benefit allocation bucket. The meal pocket (type "meals") has
// its own movements endpoint.
type Pocket struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

// Wire envelopes.
type operationsResponse struct {
	Operations struct {
		List []Operation `json:"list"`
	} `json:"operations"`
}

type pocketsResponse struct {
	Pockets []Pocket `json:"pockets"`
}

type movementsResponse struct {
	Movements struct {
		List []Operation `json:"list"`
	} `json:"movements"`
}
