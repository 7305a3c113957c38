package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kharcha/internal/model"
)

func TestRenderBudget(t *testing.T) {
	budget, err := model.NewBudget(50000, 20)
	require.NoError(t, err)

	out := renderBudget(budget, 1200)
	assert.Contains(t, out, "Monthly income")
	assert.Contains(t, out, "₹50,000.00")
	assert.Contains(t, out, "20% (₹10,000.00)")
	assert.Contains(t, out, "Spent so far")
	assert.Contains(t, out, "₹1,200.00")
	assert.Contains(t, out, "Leftover")
	assert.Contains(t, out, "₹38,800.00")
}

func TestRenderBudget_Overspent(t *testing.T) {
	budget, err := model.NewBudget(50000, 20)
	require.NoError(t, err)

	out := renderBudget(budget, 60000)
	assert.Contains(t, out, "₹0.00", "leftover floors at zero")
}
