package inventory

import "iter"

type nameKey struct {
	name string
	id   int
}

func (k nameKey) less(o nameKey) bool {
	if k.name != o.name {
		return k.name < o.name
	}
	return k.id < o.id
}

type nameNode struct {
	key         nameKey
	left, right *nameNode
}

// nameIndex is an unbalanced binary search tree ordered by (name, id).
// It holds keys only; products are resolved against the record store.
type nameIndex struct {
	root *nameNode
	size int
}

func (t *nameIndex) insert(name string, id int) {
	t.root = insertNode(t.root, nameKey{name: name, id: id})
	t.size++
}

func insertNode(n *nameNode, k nameKey) *nameNode {
	if n == nil {
		return &nameNode{key: k}
	}
	if k.less(n.key) {
		n.left = insertNode(n.left, k)
	} else {
		n.right = insertNode(n.right, k)
	}
	return n
}

func (t *nameIndex) remove(name string, id int) bool {
	var removed bool
	t.root = removeNode(t.root, nameKey{name: name, id: id}, &removed)
	if removed {
		t.size--
	}
	return removed
}

func removeNode(n *nameNode, k nameKey, removed *bool) *nameNode {
	if n == nil {
		return nil
	}

	switch {
	case k.less(n.key):
		n.left = removeNode(n.left, k, removed)
		return n
	case n.key.less(k):
		n.right = removeNode(n.right, k, removed)
		return n
	}

	*removed = true
	if n.left == nil {
		return n.right
	}
	if n.right == nil {
		return n.left
	}

	succ := n.right
	for succ.left != nil {
		succ = succ.left
	}
	n.key = succ.key

	var ignored bool
	n.right = removeNode(n.right, succ.key, &ignored)
	return n
}

// lookupName returns the id stored under name. Equal names sort next to
// each other, so descending by name alone is enough.
func (t *nameIndex) lookupName(name string) (int, bool) {
	n := t.root
	for n != nil {
		switch {
		case name < n.key.name:
			n = n.left
		case name > n.key.name:
			n = n.right
		default:
			return n.key.id, true
		}
	}
	return 0, false
}

func (t *nameIndex) ascend() iter.Seq[nameKey] {
	return func(yield func(nameKey) bool) {
		walkInOrder(t.root, yield)
	}
}

func walkInOrder(n *nameNode, yield func(nameKey) bool) bool {
	if n == nil {
		return true
	}
	if !walkInOrder(n.left, yield) {
		return false
	}
	if !yield(n.key) {
		return false
	}
	return walkInOrder(n.right, yield)
}
