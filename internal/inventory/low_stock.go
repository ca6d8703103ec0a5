package inventory

import "iter"

type lowStockEntry struct {
	id   int
	next *lowStockEntry
}

// lowStockLog is an append-only history of low-stock transitions, newest
// first. Entries are never removed; readers filter against the store.
type lowStockLog struct {
	head *lowStockEntry
	n    int
}

func (l *lowStockLog) record(id int) {
	l.head = &lowStockEntry{id: id, next: l.head}
	l.n++
}

func (l *lowStockLog) entries() iter.Seq[int] {
	return func(yield func(int) bool) {
		for e := l.head; e != nil; e = e.next {
			if !yield(e.id) {
				return
			}
		}
	}
}

func isLow(qty, threshold int) bool {
	return qty > 0 && qty < threshold
}
