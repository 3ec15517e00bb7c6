package billing

import (
	"errors"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/emerginginv/trace-aid-sub006/internal/api"
	"github.com/emerginginv/trace-aid-sub006/internal/fetch"
)

func sampleInvoices() []api.Invoice {
	return []api.Invoice{
		{
			ID:          "inv-1",
			Number:      "INV-0041",
			IssuedAt:    time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
			AmountCents: 250000,
			Currency:    "USD",
			Status:      "paid",
		},
		{
			ID:          "inv-2",
			Number:      "INV-0042",
			IssuedAt:    time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
			AmountCents: 182550,
			Currency:    "USD",
			Status:      "open",
		},
		{
			ID:          "inv-3",
			Number:      "INV-0039",
			IssuedAt:    time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
			AmountCents: 99900,
			Currency:    "USD",
			Status:      "void",
		},
	}
}

func TestViewListsInvoices(t *testing.T) {
	t.Parallel()

	c := New()
	c.SetSize(90, 24)
	c.SetInvoices(fetch.Snapshot[[]api.Invoice]{
		Data:     sampleInvoices(),
		LoadedAt: time.Now(),
	})

	view := ansi.Strip(c.View())
	require.Contains(t, view, "INV-0041")
	require.Contains(t, view, "2026-06-01")
	require.Contains(t, view, "$2,500.00")
	require.Contains(t, view, "paid")
}

func TestTotalSkipsVoidInvoices(t *testing.T) {
	t.Parallel()

	c := New()
	c.SetSize(90, 24)
	c.SetInvoices(fetch.Snapshot[[]api.Invoice]{
		Data:     sampleInvoices(),
		LoadedAt: time.Now(),
	})

	// 2,500.00 + 1,825.50, the void invoice excluded.
	require.Contains(t, ansi.Strip(c.View()), "total $4,325.50")
}

func TestMixedCurrenciesBreakOutPerCurrency(t *testing.T) {
	t.Parallel()

	invoices := sampleInvoices()[:2]
	invoices[1].Currency = "EUR"

	c := New()
	c.SetSize(90, 24)
	c.SetInvoices(fetch.Snapshot[[]api.Invoice]{
		Data:     invoices,
		LoadedAt: time.Now(),
	})

	view := ansi.Strip(c.View())
	require.Contains(t, view, "$2,500.00")
	require.Contains(t, view, "€1,825.50")
}

func TestErrorKeepsCachedLedgerVisible(t *testing.T) {
	t.Parallel()

	c := New()
	c.SetSize(90, 24)
	c.SetInvoices(fetch.Snapshot[[]api.Invoice]{
		Data:     sampleInvoices(),
		Err:      errors.New("backend down"),
		LoadedAt: time.Now(),
	})

	view := ansi.Strip(c.View())
	require.Contains(t, view, "showing cached invoices")
	require.Contains(t, view, "INV-0041")
}

func TestEmptyStates(t *testing.T) {
	t.Parallel()

	c := New()
	c.SetSize(90, 24)

	c.SetInvoices(fetch.Snapshot[[]api.Invoice]{Loading: true})
	require.Contains(t, ansi.Strip(c.View()), "Loading invoices...")

	c.SetInvoices(fetch.Snapshot[[]api.Invoice]{LoadedAt: time.Now()})
	require.Contains(t, ansi.Strip(c.View()), "No invoices yet.")
}
