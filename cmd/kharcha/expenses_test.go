package main

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/model"
)

func TestFetchExpenses(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	day := func(d int) time.Time { return time.Date(2025, 12, d, 0, 0, 0, 0, time.UTC) }
	seed := []model.Expense{
		testExpense("aaa11111-0000-0000-0000-000000000001", day(15), 450, model.CategoryGroceries, 0.8, "dmart run"),
		testExpense("aab22222-0000-0000-0000-000000000002", day(17), 320, model.CategoryDining, 0.6, "swiggy dinner"),
		testExpense("bbb33333-0000-0000-0000-000000000003", day(18), 550, model.CategoryDining, 0.9, "pizza night"),
	}
	for i := range seed {
		require.NoError(t, store.SaveExpense(ctx, &seed[i]))
	}

	all, err := fetchExpenses(ctx, store, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "bbb33333-0000-0000-0000-000000000003", all[0].ID, "newest first")

	dining, err := fetchExpenses(ctx, store, "Dining", 0)
	require.NoError(t, err)
	require.Len(t, dining, 2)

	dining, err = fetchExpenses(ctx, store, "dining", 1)
	require.NoError(t, err)
	require.Len(t, dining, 1, "lowercase category and limit should both apply")

	_, err = fetchExpenses(ctx, store, "Gambling", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestResolveCategory(t *testing.T) {
	cat, err := resolveCategory("dining")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryDining, cat)

	cat, err = resolveCategory("GROCERIES")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGroceries, cat)

	_, err = resolveCategory("Gambling")
	require.Error(t, err)
}

func TestResolveExpenseID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	day := time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC)
	seed := []model.Expense{
		testExpense("aaa11111-0000-0000-0000-000000000001", day, 450, model.CategoryGroceries, 0.8, "dmart run"),
		testExpense("aab22222-0000-0000-0000-000000000002", day, 320, model.CategoryDining, 0.6, "swiggy dinner"),
	}
	for i := range seed {
		require.NoError(t, store.SaveExpense(ctx, &seed[i]))
	}

	id, err := resolveExpenseID(ctx, store, "aaa11111-0000-0000-0000-000000000001")
	require.NoError(t, err)
	assert.Equal(t, "aaa11111-0000-0000-0000-000000000001", id)

	id, err = resolveExpenseID(ctx, store, "aab")
	require.NoError(t, err)
	assert.Equal(t, "aab22222-0000-0000-0000-000000000002", id)

	_, err = resolveExpenseID(ctx, store, "aa")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "use more characters")

	_, err = resolveExpenseID(ctx, store, "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no expense matches")

	_, err = resolveExpenseID(ctx, store, "")
	require.Error(t, err)
}

func TestExpenseRows(t *testing.T) {
	expenses := []model.Expense{
		testExpense("aaa11111-0000-0000-0000-000000000001", time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
			1200, model.CategoryDining, 0.95, "swiggy dinner"),
	}
	expenses[0].Merchant = "Swiggy"

	rows := expenseRows(expenses)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"aaa11111", "2025-12-18", "Dining", "₹1,200.00", "Swiggy", "swiggy dinner"}, rows[0])
}

func TestRenderExpense(t *testing.T) {
	e := testExpense("aaa11111-0000-0000-0000-000000000001", time.Date(2025, 12, 18, 0, 0, 0, 0, time.UTC),
		1200, model.CategoryDining, 0.95, "swiggy dinner via gpay")
	e.Merchant = "Swiggy"
	e.PaymentMethod = model.PaymentUPI

	out := renderExpense(&e)
	assert.Contains(t, out, "aaa11111-0000-0000-0000-000000000001")
	assert.Contains(t, out, "₹1,200.00")
	assert.Contains(t, out, "Dining")
	assert.Contains(t, out, "Swiggy")
	assert.Contains(t, out, "UPI")
	assert.Contains(t, out, "TEXT")
}

func TestRenderSummary(t *testing.T) {
	byCategory := map[model.Category]float64{
		model.CategoryDining:    750,
		model.CategoryGroceries: 450,
	}
	byMerchant := map[string]float64{"Swiggy": 750}

	out := renderSummary(byCategory, byMerchant, 1200)
	assert.Contains(t, out, "Spending Summary")
	assert.Contains(t, out, "Dining")
	assert.Contains(t, out, "₹750.00")
	assert.Contains(t, out, "Top merchants")
	assert.Contains(t, out, "Swiggy")
	assert.Contains(t, out, "Total: ₹1,200.00")

	diningAt := strings.Index(out, "Dining")
	groceriesAt := strings.Index(out, "Groceries")
	assert.Less(t, diningAt, groceriesAt, "bigger spend should come first")
}

func TestRenderSummary_Empty(t *testing.T) {
	out := renderSummary(nil, nil, 0)
	assert.Contains(t, out, "No expenses recorded for this period.")
	assert.NotContains(t, out, "Total:")
}

func TestRankSpend(t *testing.T) {
	entries := []spendEntry{
		{name: "Shopping", spent: 300},
		{name: "Dining", spent: 900},
		{name: "Groceries", spent: 300},
	}

	ranked := rankSpend(entries, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, "Dining", ranked[0].name)
	assert.Equal(t, "Groceries", ranked[1].name, "ties break by name")
	assert.Equal(t, "Shopping", ranked[2].name)

	capped := rankSpend(entries, 2)
	require.Len(t, capped, 2)
	assert.Equal(t, "Dining", capped[0].name)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "aaa11111", shortID("aaa11111-0000-0000-0000-000000000001"))
	assert.Equal(t, "short", shortID("short"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "unchanged", truncate("unchanged", 40))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijk", 10))
	assert.Equal(t, "paid ₹1,200 for...", truncate("paid ₹1,200 for the big family dinner", 18))
}
