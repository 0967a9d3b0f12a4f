package column_family

import (
	"github.com/tessera-db/tessera/internal/tessera"
)

// add folds a delta into the node's partial sum. Counters ignore tombstones and clocks
// only ever move forward.
func (f *Family) add(op Op) []Change {
	if len(op.Names) != 1 {
		return nil
	}
	cols, _, _ := f.target(op.SuperColumn, true)
	name := op.Names[0]

	c, ok := cols.get(name)
	if !ok || !c.isCounter() {
		c = &column{name: name, clock: op.Clock, counts: make(map[string]int64)}
		cols.put(c)
	}
	c.counts[op.NodeID] += op.Delta
	c.clock = max(c.clock, op.Clock)

	return []Change{{
		Operation:   tessera.OperationIncrement,
		SuperColumn: op.SuperColumn,
		Name:        name,
		Value:       c.toColumn().Value,
		Clock:       c.clock,
	}}
}

// clear drops counters outright so the next add starts from zero.
func (f *Family) clear(op Op) []Change {
	change := Change{
		Operation:   tessera.OperationDelete,
		SuperColumn: op.SuperColumn,
		Tombstone:   true,
	}

	switch {
	case op.Names == nil && (!f.super || op.SuperColumn == nil):
		if f.super {
			f.supers = newSuperColumns(f.cmp)
		} else {
			f.columns = newColumns(f.cmp)
		}
		return []Change{change}

	case op.Names == nil:
		f.supers.remove(op.SuperColumn)
		return []Change{change}

	case f.super && op.SuperColumn == nil:
		var changes []Change
		for _, name := range op.Names {
			f.supers.remove(name)
			c := change
			c.SuperColumn = name
			changes = append(changes, c)
		}
		return changes
	}

	cols, _, sc := f.target(op.SuperColumn, false)
	if cols == nil {
		return nil
	}
	var changes []Change
	for _, name := range op.Names {
		cols.remove(name)
		c := change
		c.Name = name
		changes = append(changes, c)
	}
	f.dropIfEmpty(sc)
	return changes
}
