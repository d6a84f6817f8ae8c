package collections

import "time"

// idGenerator issues strictly increasing ids derived from wall-clock
// milliseconds. It is not safe for concurrent use; the owning Store
// serializes access.
type idGenerator struct {
	now  func() time.Time
	last int64
}

// next returns max(now, last+1, maxExisting+1) and remembers it.
func (g *idGenerator) next(maxExisting int64) int64 {
	id := g.now().UnixMilli()
	if id <= g.last {
		id = g.last + 1
	}
	if id <= maxExisting {
		id = maxExisting + 1
	}
	g.last = id
	return id
}
