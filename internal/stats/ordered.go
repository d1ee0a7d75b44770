package stats

// orderedMap is a map that remembers the order keys were first inserted.
// Category grouping depends on it for color slots and the top tie-break.
type orderedMap[K comparable, V any] struct {
	index map[K]int
	keys  []K
	vals  []V
}

func newOrderedMap[K comparable, V any]() *orderedMap[K, V] {
	return &orderedMap[K, V]{index: make(map[K]int)}
}

// update applies fn to the value stored under k, starting from the zero value
// when k is new.
func (m *orderedMap[K, V]) update(k K, fn func(V) V) {
	i, ok := m.index[k]
	if !ok {
		var zero V
		i = len(m.keys)
		m.index[k] = i
		m.keys = append(m.keys, k)
		m.vals = append(m.vals, zero)
	}
	m.vals[i] = fn(m.vals[i])
}

func (m *orderedMap[K, V]) get(k K) (V, bool) {
	i, ok := m.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	return m.vals[i], true
}

func (m *orderedMap[K, V]) len() int { return len(m.keys) }

// each visits entries in insertion order.
func (m *orderedMap[K, V]) each(fn func(pos int, k K, v V)) {
	for i, k := range m.keys {
		fn(i, k, m.vals[i])
	}
}
