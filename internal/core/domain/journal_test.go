package domain_test

import (
	"testing"

	"github.com/finposting/ledger-core/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEntrySideOpposite(t *testing.T) {
	assert.Equal(t, domain.Credit, domain.Debit.Opposite())
	assert.Equal(t, domain.Debit, domain.Credit.Opposite())
}

func TestBaseTotals(t *testing.T) {
	lines := []domain.JournalLine{
		{Side: domain.Debit, BaseAmount: decimal.RequireFromString("440.00")},
		{Side: domain.Credit, BaseAmount: decimal.RequireFromString("400.00")},
		{Side: domain.Credit, BaseAmount: decimal.RequireFromString("40.00")},
	}

	assert.Equal(t, "440.00", domain.DebitBaseTotal(lines).StringFixed(2))
	assert.Equal(t, "440.00", domain.CreditBaseTotal(lines).StringFixed(2))
}

func TestSourceDocumentSlots(t *testing.T) {
	doc := domain.SourceDocument{
		Amounts: map[domain.AmountField]decimal.Decimal{
			domain.AmountTotal: decimal.RequireFromString("110.00"),
		},
		Parties: map[domain.PartyField]string{
			domain.PartyCustomer: "CUST-42",
		},
	}

	amount, ok := doc.AmountAt(domain.AmountTotal)
	assert.True(t, ok)
	assert.Equal(t, "110.00", amount.StringFixed(2))

	_, ok = doc.AmountAt(domain.AmountTax)
	assert.False(t, ok)

	party, ok := doc.PartyAt(domain.PartyCustomer)
	assert.True(t, ok)
	assert.Equal(t, "CUST-42", party)

	_, ok = doc.PartyAt(domain.PartySupplier)
	assert.False(t, ok)
}
