package metrics

import (
	"math"
	"sort"
)

// Metrics is the per-key aggregate. Within a single trial, Sum/Min/Max
// track the cumulative value as updates come in; the min and max *across*
// trials emerge at merge time, when each trial's cumulative value meets
// the others'.
type Metrics struct {
	Sum        int
	Min        int
	Max        int
	TrialsSeen int
	Count      int
}

// updateAdd folds another observation into a trial-local aggregate.
func (m *Metrics) updateAdd(value int) {
	m.Sum += value
	m.Min += value
	m.Max += value
	m.Count++
}

// mergeIn combines aggregates from two disjoint sets of trials.
func (m *Metrics) mergeIn(other Metrics) {
	m.Sum += other.Sum
	if other.Min < m.Min {
		m.Min = other.Min
	}
	if other.Max > m.Max {
		m.Max = other.Max
	}
	m.TrialsSeen += other.TrialsSeen
	m.Count += other.Count
}

// Data holds every tracked statistic for one trial, or — after merging —
// for a whole run. The zero number of trials seen distinguishes the
// merge identity from real observations.
type Data struct {
	TrialsSeen int

	metrics map[Key]Metrics
}

// Empty returns the merge identity: no trials, no keys.
func Empty() *Data {
	return &Data{metrics: make(map[Key]Metrics)}
}

// Add records a single count of an event.
func (d *Data) Add(key Key) {
	d.AddCount(key, 1)
}

// AddIf records a single count when present is true and nothing (not
// even a zero) otherwise.
func (d *Data) AddIf(key Key, present bool) {
	if present {
		d.AddCount(key, 1)
	}
}

// AddCount folds count into the key's aggregate, creating it on first
// use.
func (d *Data) AddCount(key Key, count int) {
	m, ok := d.metrics[key]
	if !ok {
		m = Metrics{TrialsSeen: 1}
	}
	m.updateAdd(count)
	d.metrics[key] = m
}

// Set records value under the key only if the key has not been observed
// this trial. Used for first-occurrence statistics like "turn first
// played": repeats within a trial do not update it.
func (d *Data) Set(key Key, value int) {
	if _, ok := d.metrics[key]; ok {
		return
	}
	d.metrics[key] = Metrics{Sum: value, Min: value, Max: value, TrialsSeen: 1, Count: 1}
}

// Merge folds other into d. Merge is commutative and associative, so the
// parallel runner may reduce per-trial results in any order and grouping
// and always produce the same totals.
func (d *Data) Merge(other *Data) {
	d.TrialsSeen += other.TrialsSeen
	for key, m := range other.metrics {
		existing, ok := d.metrics[key]
		if !ok {
			d.metrics[key] = m
			continue
		}
		existing.mergeIn(m)
		d.metrics[key] = existing
	}
}

// Get returns the aggregate for a key, if any trial observed it.
func (d *Data) Get(key Key) (Metrics, bool) {
	m, ok := d.metrics[key]
	return m, ok
}

// Total returns the summed value for a key, zero if never observed.
func (d *Data) Total(key Key) int {
	return d.metrics[key].Sum
}

// Average returns the key's mean value per trial that observed it, NaN
// when no trial did.
func (d *Data) Average(key Key) float64 {
	m, ok := d.metrics[key]
	if !ok || m.TrialsSeen == 0 {
		return math.NaN()
	}
	return float64(m.Sum) / float64(m.TrialsSeen)
}

// Keys returns every observed key in the deterministic report order.
func (d *Data) Keys() []Key {
	keys := make([]Key, 0, len(d.metrics))
	for key := range d.metrics {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keyLess(keys[i], keys[j]) })
	return keys
}

// Len returns the number of distinct keys observed.
func (d *Data) Len() int { return len(d.metrics) }
