package overlap

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/linkedhashset"
)

// bidiMultiMap keeps the seen left and right shape fragments of a clause list
// indexed from both directions, in insertion order.
type bidiMultiMap[K, V comparable] struct {
	fwd *linkedhashmap.Map // key: K, value: *linkedhashset.Set of V
	bwd *linkedhashmap.Map // key: V, value: *linkedhashset.Set of K
}

func newBidiMultiMap[K, V comparable]() *bidiMultiMap[K, V] {
	return &bidiMultiMap[K, V]{
		fwd: linkedhashmap.New(),
		bwd: linkedhashmap.New(),
	}
}

func (m *bidiMultiMap[K, V]) Add(k K, v V) {
	vs, ok := m.fwd.Get(k)
	if !ok {
		vs = linkedhashset.New()
		m.fwd.Put(k, vs)
	}
	vs.(*linkedhashset.Set).Add(v)

	ks, ok := m.bwd.Get(v)
	if !ok {
		ks = linkedhashset.New()
		m.bwd.Put(v, ks)
	}
	ks.(*linkedhashset.Set).Add(k)
}

func (m *bidiMultiMap[K, V]) Get(k K) []V {
	vset, ok := m.fwd.Get(k)
	if !ok {
		return nil
	}

	var vs []V
	for it := vset.(*linkedhashset.Set).Iterator(); it.Next(); {
		vs = append(vs, it.Value().(V))
	}
	return vs
}

func (m *bidiMultiMap[K, V]) GetKeys(v V) []K {
	kset, ok := m.bwd.Get(v)
	if !ok {
		return nil
	}

	var ks []K
	for it := kset.(*linkedhashset.Set).Iterator(); it.Next(); {
		ks = append(ks, it.Value().(K))
	}
	return ks
}
