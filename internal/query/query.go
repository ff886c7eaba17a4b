package query

// Sort selects the ordering applied after filtering, before paging.
type Sort int

const (
	SortNone Sort = iota
	SortByDateAsc
	SortByDateDesc
	SortByRank // only meaningful alongside a TextSearch spec
)

// Query is an immutable builder composing a Spec with sort and paging.
// Build it with New and the With* methods, each of which returns a new
// Query value.
type Query struct {
	spec   Spec
	sort   Sort
	offset int
	limit  int // 0 means unlimited
}

// New starts an empty query: no predicate, unsorted, unpaged.
func New() Query {
	return Query{}
}

// WithSpec composes an additional spec conjunctively. Calling it multiple
// times ANDs every spec together, except that a later ExactTags spec
// supersedes any earlier AllTags/AnyTags spec already composed in (the
// documented tie-break from the query algebra).
func (q Query) WithSpec(s Spec) Query {
	if _, exact := s.(ExactTags); exact {
		q.spec = dropTagSpecs(q.spec)
	}
	if q.spec == nil {
		q.spec = s
		return q
	}
	q.spec = And{Left: q.spec, Right: s}
	return q
}

func dropTagSpecs(s Spec) Spec {
	switch v := s.(type) {
	case nil:
		return nil
	case AllTags, AnyTags, ExactTags:
		return nil
	case And:
		left := dropTagSpecs(v.Left)
		right := dropTagSpecs(v.Right)
		switch {
		case left == nil && right == nil:
			return nil
		case left == nil:
			return right
		case right == nil:
			return left
		}
		return And{Left: left, Right: right}
	default:
		return s
	}
}

func (q Query) WithSort(s Sort) Query {
	q.sort = s
	return q
}

func (q Query) WithPage(offset, limit int) Query {
	q.offset = offset
	q.limit = limit
	return q
}

// Spec returns the composed predicate, or nil if none was set.
func (q Query) Spec() Spec { return q.spec }

func (q Query) SortMode() Sort { return q.sort }

func (q Query) Offset() int { return q.offset }

func (q Query) Limit() int { return q.limit }

// HasTextSearch reports whether the composed spec requires the FTS shadow.
func (q Query) HasTextSearch() bool {
	if q.spec == nil {
		return false
	}
	_, _, usesFTS := q.spec.SQL()
	return usesFTS
}
