package column_family

import (
	"time"
)

// Purge turns expired columns into tombstones at their own clock and removes
// tombstones written before gcBefore. It returns how many entries were removed or
// converted.
func (f *Family) Purge(now, gcBefore time.Time) int {
	cutoff := gcBefore.Unix()
	purged := 0

	if f.deletedAt != liveClock && f.localDeletion < cutoff {
		f.deletedAt = liveClock
		purged++
	}

	if !f.super {
		return purged + purgeColumns(f.columns, now, cutoff)
	}

	var empty [][]byte
	f.supers.tree.Ascend(func(sc *superColumn) bool {
		if sc.deletedAt != liveClock && sc.localDeletion < cutoff {
			sc.deletedAt = liveClock
			purged++
		}
		purged += purgeColumns(sc.columns, now, cutoff)
		if sc.columns.len() == 0 && sc.deletedAt == liveClock {
			empty = append(empty, sc.name)
		}
		return true
	})
	for _, name := range empty {
		f.supers.remove(name)
	}
	return purged
}

func purgeColumns(cs *columns, now time.Time, cutoff int64) int {
	var doomed []*column
	var expired []*column
	cs.tree.Ascend(func(c *column) bool {
		switch {
		case c.deleted && c.localDeletion < cutoff:
			doomed = append(doomed, c)
		case !c.deleted && c.expired(now):
			expired = append(expired, c)
		}
		return true
	})

	for _, c := range doomed {
		cs.tree.Delete(c)
	}
	for _, c := range expired {
		ts := newTombstone(c.name, c.clock, time.Unix(0, c.expiresAt))
		if ts.localDeletion < cutoff {
			cs.tree.Delete(c)
			continue
		}
		cs.put(ts)
	}
	return len(doomed) + len(expired)
}

// HasExpiring reports whether any column carries a ttl that has not yet been reaped.
func (f *Family) HasExpiring() bool {
	found := false
	check := func(c *column) bool {
		if c.expiresAt != 0 && !c.deleted {
			found = true
			return false
		}
		return true
	}
	if !f.super {
		f.columns.tree.Ascend(check)
		return found
	}
	f.supers.tree.Ascend(func(sc *superColumn) bool {
		sc.columns.tree.Ascend(check)
		return !found
	})
	return found
}
