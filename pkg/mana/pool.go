package mana

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// braceToken matches a single {...} group; tokenGrammar matches a whole
// string made up of zero or more such groups back to back, e.g. "{G}{G}{2}".
var (
	braceToken   = regexp.MustCompile(`\{([^{}]+)\}`)
	tokenGrammar = regexp.MustCompile(`^(\{[^{}]+\})*$`)
)

// Pool is a quantity of colored mana actually sitting in a player's mana
// pool: a count of pips per color. Unlike Cost, a Pool has no generic
// component — generic mana is a payment obligation, not a kind of mana.
type Pool struct {
	White, Blue, Black, Red, Green, Colorless uint8
}

// Empty is the zero-value pool, spelled out for readability at call sites.
func Empty() Pool { return Pool{} }

// One returns a pool with a single pip of the given type.
func One(t Type) Pool {
	var p Pool
	return p.AddPip(t)
}

// Get returns the pip count of the given color.
func (p Pool) Get(t Type) uint8 {
	switch t {
	case White:
		return p.White
	case Blue:
		return p.Blue
	case Black:
		return p.Black
	case Red:
		return p.Red
	case Green:
		return p.Green
	case Colorless:
		return p.Colorless
	default:
		return 0
	}
}

// with returns a copy of p with the given color set to n.
func (p Pool) with(t Type, n uint8) Pool {
	switch t {
	case White:
		p.White = n
	case Blue:
		p.Blue = n
	case Black:
		p.Black = n
	case Red:
		p.Red = n
	case Green:
		p.Green = n
	case Colorless:
		p.Colorless = n
	}
	return p
}

// AddPip returns a copy of p with one additional pip of type t.
func (p Pool) AddPip(t Type) Pool {
	return p.with(t, p.Get(t)+1)
}

// RemovePip returns a copy of p with one fewer pip of type t. Fails with
// ErrManaUnderflow if p has no pips of that color to remove.
func (p Pool) RemovePip(t Type) (Pool, error) {
	n := p.Get(t)
	if n == 0 {
		return Pool{}, fmt.Errorf("remove pip %s from %s: %w", t, p, ErrManaUnderflow)
	}
	return p.with(t, n-1), nil
}

// Add returns the pointwise sum of two pools.
func (p Pool) Add(o Pool) Pool {
	return Pool{
		White:     p.White + o.White,
		Blue:      p.Blue + o.Blue,
		Black:     p.Black + o.Black,
		Red:       p.Red + o.Red,
		Green:     p.Green + o.Green,
		Colorless: p.Colorless + o.Colorless,
	}
}

// Sub returns the pointwise difference p - o. Fails with ErrManaUnderflow
// if o has more of any color than p does.
func (p Pool) Sub(o Pool) (Pool, error) {
	var out Pool
	for _, t := range Types {
		a, b := p.Get(t), o.Get(t)
		if b > a {
			return Pool{}, fmt.Errorf("subtract %s from %s: %w", o, p, ErrManaUnderflow)
		}
		out = out.with(t, a-b)
	}
	return out, nil
}

// ManaValue is the total pip count across all colors.
func (p Pool) ManaValue() int {
	total := 0
	for _, t := range Types {
		total += int(p.Get(t))
	}
	return total
}

// IsEmpty reports whether the pool has no pips of any color.
func (p Pool) IsEmpty() bool { return p.ManaValue() == 0 }

// String renders the pool as concatenated brace tokens in the fixed color
// order, e.g. "{W}{W}{G}". An empty pool renders as "".
func (p Pool) String() string {
	var sb strings.Builder
	for _, t := range Types {
		n := p.Get(t)
		for i := uint8(0); i < n; i++ {
			sb.WriteString("{")
			sb.WriteString(t.String())
			sb.WriteString("}")
		}
	}
	return sb.String()
}

// ParsePool parses a brace-token string into a Pool. "" parses to the
// empty pool. Any generic (numeric) token is rejected with
// ErrGenericCostInManaPool since a pool has no generic component.
func ParsePool(s string) (Pool, error) {
	tokens, err := splitTokens(s)
	if err != nil {
		return Pool{}, err
	}
	var p Pool
	for _, tok := range tokens {
		if isDigits(tok) {
			return Pool{}, fmt.Errorf("parse pool %q: %w", s, ErrGenericCostInManaPool)
		}
		if len(tok) != 1 {
			return Pool{}, fmt.Errorf("parse pool %q: token %q: %w", s, tok, ErrInvalidManaType)
		}
		t, ok := parseType(tok[0])
		if !ok {
			return Pool{}, fmt.Errorf("parse pool %q: token %q: %w", s, tok, ErrInvalidManaType)
		}
		p = p.AddPip(t)
	}
	return p, nil
}

// splitTokens validates the overall brace grammar and returns the
// contents of each {...} group in order.
func splitTokens(s string) ([]string, error) {
	if !tokenGrammar.MatchString(s) {
		return nil, fmt.Errorf("parse %q: %w", s, ErrDidNotMatchRegex)
	}
	matches := braceToken.FindAllStringSubmatch(s, -1)
	tokens := make([]string, 0, len(matches))
	for _, m := range matches {
		tokens = append(tokens, m[1])
	}
	return tokens, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// sortPools sorts pools into a canonical order and removes duplicates, so
// that payment-enumeration functions can return a deduplicated result set
// regardless of the order solutions were discovered in.
func sortPools(pools []Pool) []Pool {
	sort.Slice(pools, func(i, j int) bool { return poolLess(pools[i], pools[j]) })
	out := pools[:0]
	for i, p := range pools {
		if i == 0 || p != out[len(out)-1] {
			out = append(out, p)
		}
	}
	return out
}

func poolLess(a, b Pool) bool {
	for _, t := range Types {
		av, bv := a.Get(t), b.Get(t)
		if av != bv {
			return av < bv
		}
	}
	return false
}
