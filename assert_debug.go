//go:build keyroute_debug

package keyroute

import (
	"fmt"

	"github.com/gobwas/avl"
)

const debug = true

// assertConsistent panics unless elems is strictly ascending under cmp
// and members holds exactly the same nodes.
func assertConsistent[T any](elems []T, members avl.Tree, cmp func(a, b T) int) {
	for i := 1; i < len(elems); i++ {
		if cmp(elems[i-1], elems[i]) >= 0 {
			panic(fmt.Sprintf(
				"keyroute: internal error: elements out of order at %d", i,
			))
		}
	}
	if n, m := members.Size(), len(elems); n != m {
		panic(fmt.Sprintf(
			"keyroute: internal error: membership size mismatch: %d vs %d", n, m,
		))
	}
	for i, x := range elems {
		if members.Search(member[T]{x, cmp}) == nil {
			panic(fmt.Sprintf(
				"keyroute: internal error: element %d missing from membership", i,
			))
		}
	}
}
