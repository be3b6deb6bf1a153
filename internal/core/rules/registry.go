// Package rules holds the static posting-rule catalogue that maps business
// document types to balanced debit/credit line templates.
package rules

import (
	"fmt"
	"strings"

	"github.com/finposting/ledger-core/internal/apperrors"
	"github.com/finposting/ledger-core/internal/core/domain"
)

// LineTemplate configures one journal line a rule produces: which account it
// hits and which enumerated document slots feed its amount and party.
type LineTemplate struct {
	AccountCode string
	Amount      domain.AmountField
	Party       *domain.PartyField
	// Optional line-level dimension overrides; nil falls back to the
	// document-level defaults.
	CostCenterID *string
	ProjectID    *string
}

// KeyPart is one segment of an idempotency-key template.
type KeyPart string

const (
	KeyDocType KeyPart = "docType"
	KeyDocID   KeyPart = "docID"
)

// PostingRule is the compiled posting recipe for one document type.
// Debits render before credits, in template order. Immutable once registered.
type PostingRule struct {
	DocType     domain.DocumentType
	DebitLines  []LineTemplate
	CreditLines []LineTemplate
	KeyTemplate []KeyPart
}

// RenderKey derives the idempotency key for a posting of docID under this
// rule, e.g. "SalesInvoice:INV-1".
func (r PostingRule) RenderKey(docID string) string {
	parts := make([]string, 0, len(r.KeyTemplate))
	for _, p := range r.KeyTemplate {
		switch p {
		case KeyDocType:
			parts = append(parts, string(r.DocType))
		case KeyDocID:
			parts = append(parts, docID)
		}
	}
	return strings.Join(parts, ":")
}

// Registry resolves posting rules by document type. Lookup is a pure read of
// static configuration; there is no I/O behind it.
type Registry struct {
	rules map[domain.DocumentType]PostingRule
}

// NewRegistry seeds the registry with the default rule catalogue.
func NewRegistry() *Registry {
	reg := &Registry{rules: make(map[domain.DocumentType]PostingRule)}
	for _, r := range defaultRules() {
		reg.rules[r.DocType] = r
	}
	return reg
}

// Load returns the rule registered for docType.
func (reg *Registry) Load(docType domain.DocumentType) (PostingRule, error) {
	if r, ok := reg.rules[docType]; ok {
		return r, nil
	}
	return PostingRule{}, fmt.Errorf("%w: %s", apperrors.ErrRuleNotFound, docType)
}

func partyRef(f domain.PartyField) *domain.PartyField {
	return &f
}

func defaultRules() []PostingRule {
	return []PostingRule{
		{
			DocType: domain.SalesInvoice,
			DebitLines: []LineTemplate{
				{AccountCode: "1200", Amount: domain.AmountTotal, Party: partyRef(domain.PartyCustomer)}, // Accounts receivable
			},
			CreditLines: []LineTemplate{
				{AccountCode: "4000", Amount: domain.AmountNet}, // Revenue
				{AccountCode: "2150", Amount: domain.AmountTax}, // Output tax
			},
			KeyTemplate: []KeyPart{KeyDocType, KeyDocID},
		},
		{
			DocType: domain.PurchaseInvoice,
			DebitLines: []LineTemplate{
				{AccountCode: "5000", Amount: domain.AmountNet}, // Purchases
				{AccountCode: "1160", Amount: domain.AmountTax}, // Input tax
			},
			CreditLines: []LineTemplate{
				{AccountCode: "2100", Amount: domain.AmountTotal, Party: partyRef(domain.PartySupplier)}, // Accounts payable
			},
			KeyTemplate: []KeyPart{KeyDocType, KeyDocID},
		},
		{
			DocType: domain.CustomerPayment,
			DebitLines: []LineTemplate{
				{AccountCode: "1100", Amount: domain.AmountTotal}, // Bank
			},
			CreditLines: []LineTemplate{
				{AccountCode: "1200", Amount: domain.AmountTotal, Party: partyRef(domain.PartyCustomer)},
			},
			KeyTemplate: []KeyPart{KeyDocType, KeyDocID},
		},
		{
			DocType: domain.SupplierPayment,
			DebitLines: []LineTemplate{
				{AccountCode: "2100", Amount: domain.AmountTotal, Party: partyRef(domain.PartySupplier)},
			},
			CreditLines: []LineTemplate{
				{AccountCode: "1100", Amount: domain.AmountTotal},
			},
			KeyTemplate: []KeyPart{KeyDocType, KeyDocID},
		},
		{
			DocType: domain.StockReceipt,
			DebitLines: []LineTemplate{
				{AccountCode: "1300", Amount: domain.AmountStockCost}, // Inventory
			},
			CreditLines: []LineTemplate{
				{AccountCode: "2160", Amount: domain.AmountStockCost}, // GRN accrual
			},
			KeyTemplate: []KeyPart{KeyDocType, KeyDocID},
		},
		{
			DocType: domain.StockIssue,
			DebitLines: []LineTemplate{
				{AccountCode: "5100", Amount: domain.AmountStockCost}, // Cost of goods sold
			},
			CreditLines: []LineTemplate{
				{AccountCode: "1300", Amount: domain.AmountStockCost},
			},
			KeyTemplate: []KeyPart{KeyDocType, KeyDocID},
		},
	}
}
