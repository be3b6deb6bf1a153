package domain

import "github.com/shopspring/decimal"

// DocumentType enumerates the business documents the posting core knows how
// to turn into journals. Each type resolves to exactly one posting rule.
type DocumentType string

const (
	SalesInvoice    DocumentType = "SalesInvoice"
	PurchaseInvoice DocumentType = "PurchaseInvoice"
	CustomerPayment DocumentType = "CustomerPayment"
	SupplierPayment DocumentType = "SupplierPayment"
	StockReceipt    DocumentType = "StockReceipt"
	StockIssue      DocumentType = "StockIssue"

	// FxRevalAdjustment tags journals posted by the revaluation engine; it
	// has no posting rule, the engine builds its lines directly.
	FxRevalAdjustment DocumentType = "FxRevalAdjustment"
)

// AmountField names an amount slot a posting rule can read from a document.
// Keeping the set closed avoids dynamic property lookup on untyped payloads.
type AmountField string

const (
	AmountTotal     AmountField = "total"
	AmountNet       AmountField = "net"
	AmountTax       AmountField = "tax"
	AmountStockCost AmountField = "stock_cost"
)

// PartyField names a party slot a posting rule can read from a document.
type PartyField string

const (
	PartyCustomer PartyField = "customer"
	PartySupplier PartyField = "supplier"
)

// SourceDocument is the posting core's view of a business document: a bag of
// enumerated amount and party slots plus document-level dimension defaults.
// Callers map their own invoice/payment/stock shapes into this before posting.
type SourceDocument struct {
	Amounts map[AmountField]decimal.Decimal
	Parties map[PartyField]string
	// Document-level dimension defaults; a rule line may override them.
	CostCenterID *string
	ProjectID    *string
}

// AmountAt reads an enumerated amount slot; ok is false when absent.
func (d SourceDocument) AmountAt(f AmountField) (decimal.Decimal, bool) {
	v, ok := d.Amounts[f]
	return v, ok
}

// PartyAt reads an enumerated party slot; ok is false when absent.
func (d SourceDocument) PartyAt(f PartyField) (string, bool) {
	v, ok := d.Parties[f]
	return v, ok
}
