package keyroute

import "github.com/gobwas/avl"

// member adapts a node to the avl item contract using the router's
// comparator. Two members are the same element exactly when the
// comparator reports zero.
type member[T any] struct {
	value T
	cmp   func(a, b T) int
}

func (m member[T]) Compare(x avl.Item) int {
	return m.cmp(m.value, x.(member[T]).value)
}

func mustInsert[T any](tree avl.Tree, m member[T]) avl.Tree {
	tree, existing := tree.Insert(m)
	if existing != nil {
		panic("keyroute: internal error: mustInsert failed")
	}
	return tree
}
