package task

// Record is the loosely typed form of a task as it arrives from a client:
// decoded JSON or YAML with no guarantees about field types.
type Record map[string]any

// Lookup returns the value stored under key and whether the key was present
// with a non-nil value.
func (r Record) Lookup(key string) (any, bool) {
	v, ok := r[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	cp := make(Record, len(r))
	for k, v := range r {
		cp[k] = v
	}
	return cp
}
