package attributes

import "sort"

// Pair is a single attribute entry in list form.
type Pair struct {
	Key   string `json:"key"`
	Value int    `json:"value"`
}

// Table maps attribute keys to numeric values. Unset keys read as 0 and
// keys are never removed once written.
type Table struct {
	values map[string]int
}

// NewTable creates an empty attribute table.
func NewTable() *Table {
	return &Table{
		values: make(map[string]int),
	}
}

// FromMap creates a table seeded with the given values.
func FromMap(values map[string]int) *Table {
	t := NewTable()
	for k, v := range values {
		t.values[k] = v
	}
	return t
}

// FromPairs rebuilds a table from its list form. Later pairs win on duplicate keys.
func FromPairs(pairs []Pair) *Table {
	t := NewTable()
	for _, p := range pairs {
		t.values[p.Key] = p.Value
	}
	return t
}

// Get returns the value for key, or 0 if the key was never written.
func (t *Table) Get(key string) int {
	return t.values[key]
}

// Lookup returns the value for key and whether it has been written.
func (t *Table) Lookup(key string) (int, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Set writes the value for key.
func (t *Table) Set(key string, value int) {
	t.values[key] = value
}

// Materialize stores 0 for key if it has never been written and returns the value.
func (t *Table) Materialize(key string) int {
	v, ok := t.values[key]
	if !ok {
		t.values[key] = 0
	}
	return v
}

// Has reports whether key has been written.
func (t *Table) Has(key string) bool {
	_, ok := t.values[key]
	return ok
}

// Len returns the number of keys written.
func (t *Table) Len() int {
	return len(t.values)
}

// Keys returns the written keys in sorted order.
func (t *Table) Keys() []string {
	keys := make([]string, 0, len(t.values))
	for k := range t.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Pairs returns the table in list form, sorted by key.
func (t *Table) Pairs() []Pair {
	keys := t.Keys()
	pairs := make([]Pair, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: t.values[k]})
	}
	return pairs
}

// Map returns a copy of the table as a plain map.
func (t *Table) Map() map[string]int {
	result := make(map[string]int, len(t.values))
	for k, v := range t.values {
		result[k] = v
	}
	return result
}

// Copy creates a deep copy of the table.
func (t *Table) Copy() *Table {
	return FromMap(t.values)
}
