package evolution

import (
	"math/rand"
	"sort"
)

// crossoverParams combines two parents' parameter maps uniformly key-wise:
// for each key in the union of both key sets, the child takes the value from
// either parent with 50/50 probability. Keys present in only one parent always
// take that parent's value. No validity checking between co-selected values is
// performed; invalid combinations are the generative backend's concern.
//
// The key union is visited in sorted order for reproducibility under a fixed
// random source.
func crossoverParams(a, b map[string]interface{}, rng *rand.Rand) map[string]interface{} {
	union := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		union[k] = struct{}{}
	}
	for k := range b {
		union[k] = struct{}{}
	}

	keys := make([]string, 0, len(union))
	for k := range union {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	child := make(map[string]interface{}, len(keys))
	for _, k := range keys {
		av, inA := a[k]
		bv, inB := b[k]
		switch {
		case inA && inB:
			if rng.Float64() < 0.5 {
				child[k] = av
			} else {
				child[k] = bv
			}
		case inA:
			child[k] = av
		default:
			child[k] = bv
		}
	}

	return child
}
