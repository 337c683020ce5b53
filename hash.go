package keyroute

import (
	"fmt"
	"hash"
	"io"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// digestPool reuses default digest states across Route calls.
var digestPool sync.Pool

func (r Router[T]) digest(key io.WriterTo) uint64 {
	var h hash.Hash64
	if r.hash != nil {
		h = r.hash()
	} else {
		h, _ = digestPool.Get().(hash.Hash64)
		if h == nil {
			h = xxhash.New()
		}
		defer func() {
			h.Reset()
			digestPool.Put(h)
		}()
	}
	_, err := key.WriteTo(h)
	if err != nil {
		panic(fmt.Sprintf("keyroute: digest error: %v", err))
	}
	return h.Sum64()
}

// avalanche is the 32-bit finalizer applied to a key's hash code before
// the modulo reduction. All arithmetic wraps as two's-complement and
// right shifts are logical; the exact bit pattern is part of the routing
// contract and must not change between versions.
func avalanche(h int32) int32 {
	h += ^(h << 9)
	h ^= int32(uint32(h) >> 14)
	h += h << 4
	h ^= int32(uint32(h) >> 10)
	return h
}

// abs32 returns the magnitude of h. The magnitude of math.MinInt32 does
// not fit in int32, so it is computed in uint32 space: abs32(-1<<31) is
// 1<<31, which keeps the routing index in range for every input.
func abs32(h int32) uint32 {
	if h < 0 {
		return uint32(-int64(h))
	}
	return uint32(h)
}
