package diff

// Operation is one changed operation of an API.
type Operation struct {
	ID     string `json:"id"`
	Change Change `json:"change"`
}

// Changes holds the net-changed operations of one API comparison as three
// disjoint, ordered sets of operation identifiers.
type Changes struct {
	Added   []string `json:"added"`
	Changed []string `json:"changed"`
	Removed []string `json:"removed"`
}

// Aggregate classifies every endpoint and sorts its identifier into the
// added, changed or removed set. Endpoints without any diff contribute
// nothing. Endpoint keys are visited in sorted order and an identifier is
// placed in at most one set.
func Aggregate(endpoints map[string]Endpoint) Changes {
	var c Changes
	seen := make(map[string]bool, len(endpoints))
	for _, key := range sortedKeys(endpoints) {
		ep := endpoints[key]
		id := ep.ID()
		if seen[id] {
			continue
		}
		cl := Classify(ep)
		switch {
		case cl.Change == ChangeAdded:
			c.Added = append(c.Added, id)
		case cl.Change == ChangeRemoved:
			c.Removed = append(c.Removed, id)
		case len(cl.All) > 0:
			c.Changed = append(c.Changed, id)
		default:
			continue
		}
		seen[id] = true
	}
	return c
}

// Counts returns the size of each set.
func (c Changes) Counts() Counts {
	return Counts{
		Added:   len(c.Added),
		Changed: len(c.Changed),
		Removed: len(c.Removed),
	}
}

// Len returns the number of net-changed operations.
func (c Changes) Len() int {
	return len(c.Added) + len(c.Changed) + len(c.Removed)
}

// Operations lists added operations first, then changed, then removed.
func (c Changes) Operations() []Operation {
	ops := make([]Operation, 0, c.Len())
	for _, group := range []struct {
		ids    []string
		change Change
	}{
		{c.Added, ChangeAdded},
		{c.Changed, ChangeChanged},
		{c.Removed, ChangeRemoved},
	} {
		for _, id := range group.ids {
			ops = append(ops, Operation{ID: id, Change: group.change})
		}
	}
	return ops
}
