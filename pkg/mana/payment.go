package mana

// GenericPayments enumerates every distinct sub-pool of available that
// pays exactly `generic` mana value, by recursively removing one pip of
// each color in the fixed declared order and recursing on generic-1. The
// base case (generic == 0) is the single empty payment. Results are
// sorted and deduplicated at every level of the recursion, matching the
// original generator's behavior of sorting its own output regardless of
// recursion depth.
func GenericPayments(available Pool, generic int) []Pool {
	if generic <= 0 {
		return []Pool{Empty()}
	}
	var solutions []Pool
	for _, t := range Types {
		next, err := available.RemovePip(t)
		if err != nil {
			continue
		}
		for _, sub := range GenericPayments(next, generic-1) {
			solutions = append(solutions, sub.AddPip(t))
		}
	}
	return sortPools(solutions)
}

// CostPayments enumerates every distinct sub-pool of available that pays
// the full cost: first subtracts the cost's required colors, then
// enumerates payments for the remaining generic amount over what's left,
// then adds the required colors back into each candidate so the result
// describes the total mana actually spent. Returns nil if available
// can't even cover the colored requirement.
func CostPayments(available Pool, cost Cost) []Pool {
	remaining, err := available.Sub(cost.Colors)
	if err != nil {
		return nil
	}
	generics := GenericPayments(remaining, int(cost.Generic))
	payments := make([]Pool, len(generics))
	for i, g := range generics {
		payments[i] = g.Add(cost.Colors)
	}
	return payments
}

// CanPay reports whether available admits at least one payment for cost.
func CanPay(available Pool, cost Cost) bool {
	return len(CostPayments(available, cost)) > 0
}
