package resource

import (
	"strconv"
	"testing"
)

func BenchmarkGetOrCreateHit(b *testing.B) {
	c := New()
	_, _ = GetOrCreate(c, "shader", newHandle(1))

	b.ReportAllocs()
	for b.Loop() {
		_, _ = GetOrCreate(c, "shader", newHandle(1))
	}
}

func BenchmarkTryGet(b *testing.B) {
	c := New()
	for i := 0; i < 100; i++ {
		_, _ = GetOrCreate(c, strconv.Itoa(i), newHandle(i))
	}

	b.ReportAllocs()
	for b.Loop() {
		TryGet[*handle](c, "50")
	}
}

func BenchmarkGetOrCreateRemove(b *testing.B) {
	c := New()
	factory := newHandle(1)

	for b.Loop() {
		_, _ = GetOrCreate(c, "k", factory)
		_, _ = c.Remove("k")
	}
}

func BenchmarkGetOrCreateParallel(b *testing.B) {
	c := New()
	keys := make([]string, 256)
	for i := range keys {
		keys[i] = "mesh/" + strconv.Itoa(i)
	}

	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			_, _ = GetOrCreate(c, keys[i%len(keys)], newHandle(i))
			i++
		}
	})
}
