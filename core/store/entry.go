package store

// ResourceEntry is the fetch state of one resource type for one class.
// Loading and Errored are independent flags; both may be set at once.
type ResourceEntry[T any] struct {
	Loading bool `json:"loading"`
	Errored bool `json:"errored"`
	Data    T    `json:"data"`
}

// ResourceMap caches a resource per class id. A missing id means "never fetched".
//
// A ResourceMap is never modified once published in a State: every transition builds
// a new map, reusing the entry pointers of the other classes.
type ResourceMap[T any] map[string]*ResourceEntry[T]

// Get returns a copy of the entry of classID.
func (m ResourceMap[T]) Get(classID string) (ResourceEntry[T], bool) {
	e, ok := m[classID]
	if !ok {
		return ResourceEntry[T]{}, false
	}
	return *e, true
}

func (m ResourceMap[T]) Has(classID string) bool {
	_, ok := m[classID]
	return ok
}

// update returns a new map where the entry of classID is replaced by fn applied to a copy
// of the current entry. Unknown ids start from {Loading: true, Data: empty()}.
func (m ResourceMap[T]) update(classID string, empty func() T, fn func(e *ResourceEntry[T])) ResourceMap[T] {
	var entry ResourceEntry[T]
	if cur, ok := m[classID]; ok {
		entry = *cur
	} else {
		entry = ResourceEntry[T]{Loading: true, Data: empty()}
	}
	fn(&entry)

	next := make(ResourceMap[T], len(m)+1)
	for id, e := range m {
		next[id] = e
	}
	next[classID] = &entry
	return next
}

func (m ResourceMap[T]) setLoading(classID string, loading bool, empty func() T) ResourceMap[T] {
	return m.update(classID, empty, func(e *ResourceEntry[T]) { e.Loading = loading })
}

func (m ResourceMap[T]) setErrored(classID string, errored bool, empty func() T) ResourceMap[T] {
	return m.update(classID, empty, func(e *ResourceEntry[T]) { e.Errored = errored })
}

// setData stores fetched data and ends loading. Errored keeps its previous value.
func (m ResourceMap[T]) setData(classID string, data T, empty func() T) ResourceMap[T] {
	return m.update(classID, empty, func(e *ResourceEntry[T]) {
		e.Data = data
		e.Loading = false
	})
}

func (m ResourceMap[T]) mapData(classID string, empty func() T, fn func(T) T) ResourceMap[T] {
	return m.update(classID, empty, func(e *ResourceEntry[T]) { e.Data = fn(e.Data) })
}
