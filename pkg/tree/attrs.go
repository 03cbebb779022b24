package tree

// Attr is one attribute key/value pair.
type Attr struct {
	Key   string
	Value string
}

// Attrs is an insertion-ordered attribute list. Renderers emit attributes in
// this order, and Set updates a key in place so its position survives
// mutation. Lookups are linear; attribute lists are small.
type Attrs []Attr

// Get returns the value for key and whether it is present.
func (a Attrs) Get(key string) (string, bool) {
	for _, kv := range a {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return "", false
}

// Set updates key in place, or appends it when absent.
func (a *Attrs) Set(key, value string) {
	for i := range *a {
		if (*a)[i].Key == key {
			(*a)[i].Value = value
			return
		}
	}
	*a = append(*a, Attr{Key: key, Value: value})
}

// Del removes key and reports whether it was present.
func (a *Attrs) Del(key string) bool {
	for i, kv := range *a {
		if kv.Key == key {
			*a = append((*a)[:i], (*a)[i+1:]...)
			return true
		}
	}
	return false
}

// Contains reports whether every pair of want is present with an equal value.
// Extra attributes on a are allowed; an empty want always matches.
func (a Attrs) Contains(want Attrs) bool {
	for _, kv := range want {
		v, ok := a.Get(kv.Key)
		if !ok || v != kv.Value {
			return false
		}
	}
	return true
}

// Map copies the attributes into a plain map, dropping order. Returns nil
// for an empty list.
func (a Attrs) Map() map[string]string {
	if len(a) == 0 {
		return nil
	}
	m := make(map[string]string, len(a))
	for _, kv := range a {
		m[kv.Key] = kv.Value
	}
	return m
}
