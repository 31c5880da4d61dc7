package naming

import "strings"

// QualifiedMap looks up values keyed by qualified names (schema.table or
// schema.table.column). Keys match exactly first, then ignoring case, since
// config files lose key case on load.
type QualifiedMap[V any] struct {
	exact  map[string]V
	folded map[string]V
}

// NewQualifiedMap indexes m. When two keys differ only in case the
// lexically smaller one wins the folded slot.
func NewQualifiedMap[V any](m map[string]V) QualifiedMap[V] {
	q := QualifiedMap[V]{exact: m, folded: make(map[string]V, len(m))}
	winners := make(map[string]string, len(m))
	for k, v := range m {
		f := strings.ToLower(k)
		if w, ok := winners[f]; ok && w < k {
			continue
		}
		winners[f] = k
		q.folded[f] = v
	}
	return q
}

// Get returns the value stored for key
func (q QualifiedMap[V]) Get(key string) (V, bool) {
	if v, ok := q.exact[key]; ok {
		return v, true
	}
	v, ok := q.folded[strings.ToLower(key)]
	return v, ok
}
