package mana

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericPaymentsZeroIsSingleEmpty(t *testing.T) {
	got := GenericPayments(mustPool(t, "{G}{G}"), 0)
	require.Len(t, got, 1)
	assert.True(t, got[0].IsEmpty())
}

func TestGenericPaymentsEnumeratesEveryColor(t *testing.T) {
	got := GenericPayments(mustPool(t, "{W}{U}"), 1)
	assert.ElementsMatch(t, []Pool{mustPool(t, "{W}"), mustPool(t, "{U}")}, got)
}

func TestGenericPaymentsDeduplicates(t *testing.T) {
	// Two green pips: paying 1 generic with "one green pip" is a single
	// distinct solution even though there are two ways to pick "a" green.
	got := GenericPayments(mustPool(t, "{G}{G}"), 1)
	assert.Equal(t, []Pool{mustPool(t, "{G}")}, got)
}

func TestGenericPaymentsInsufficientMana(t *testing.T) {
	got := GenericPayments(mustPool(t, "{G}"), 2)
	assert.Empty(t, got)
}

func TestCostPaymentsSubtractsColorsFirst(t *testing.T) {
	available := mustPool(t, "{W}{G}{G}")
	cost := mustCost(t, "{1}{G}")
	got := CostPayments(available, cost)
	assert.ElementsMatch(t, []Pool{mustPool(t, "{W}{G}"), mustPool(t, "{G}{G}")}, got)
}

func TestCostPaymentsUnpayable(t *testing.T) {
	available := mustPool(t, "{G}")
	cost := mustCost(t, "{R}{G}")
	assert.Empty(t, CostPayments(available, cost))
	assert.False(t, CanPay(available, cost))
}

func TestCostPaymentsExactMatch(t *testing.T) {
	available := mustPool(t, "{W}{U}{B}")
	cost := mustCost(t, "{3}")
	got := CostPayments(available, cost)
	require.Len(t, got, 1)
	assert.Equal(t, available, got[0])
}

func TestCostPaymentsSinglePossibility(t *testing.T) {
	available := mustPool(t, "{R}{R}{G}{G}")
	cost := mustCost(t, "{2}{G}{G}")
	got := CostPayments(available, cost)
	require.Len(t, got, 1)
	assert.Equal(t, available, got[0])
}

func TestCostPaymentsMultiplePossibilities(t *testing.T) {
	available := mustPool(t, "{W}{U}{B}{G}{G}")
	cost := mustCost(t, "{2}{G}{G}")
	got := CostPayments(available, cost)
	assert.ElementsMatch(t, []Pool{
		mustPool(t, "{W}{U}{G}{G}"),
		mustPool(t, "{W}{B}{G}{G}"),
		mustPool(t, "{U}{B}{G}{G}"),
	}, got)
}

func TestCostPaymentsCoverEveryProperty(t *testing.T) {
	available := mustPool(t, "{W}{W}{U}{G}")
	cost := mustCost(t, "{2}{W}")
	for _, payment := range CostPayments(available, cost) {
		_, err := payment.Sub(cost.Colors)
		assert.NoError(t, err, "payment %s must cover the colored part", payment)
		_, err = available.Sub(payment)
		assert.NoError(t, err, "payment %s must fit in the available pool", payment)
		assert.Equal(t, cost.ManaValue(), payment.ManaValue())
	}
}

func mustPool(t *testing.T, s string) Pool {
	t.Helper()
	p, err := ParsePool(s)
	require.NoError(t, err)
	return p
}

func mustCost(t *testing.T, s string) Cost {
	t.Helper()
	c, err := ParseCost(s)
	require.NoError(t, err)
	return c
}
