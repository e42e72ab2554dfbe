package resource_test

import (
	"errors"
	"fmt"

	"github.com/grimsleynate/ToD-Game-Engine/resource"
)

type shader struct {
	name string
}

func (s *shader) Release() error {
	fmt.Println("released", s.name)
	return nil
}

func ExampleGetOrCreate() {
	c := resource.New()
	defer c.Dispose()

	load := func() (*shader, error) {
		fmt.Println("compiling triangle")
		return &shader{name: "triangle"}, nil
	}

	a, _ := resource.GetOrCreate(c, "shader/triangle", load)
	b, _ := resource.GetOrCreate(c, "shader/triangle", load)
	fmt.Println(a == b)
	// Output:
	// compiling triangle
	// true
	// released triangle
}

func ExampleCache_Remove() {
	c := resource.New()
	_, _ = resource.GetOrCreate(c, "shader/blit", func() (*shader, error) {
		return &shader{name: "blit"}, nil
	})

	removed, _ := c.Remove("shader/blit")
	_, ok := resource.TryGet[*shader](c, "shader/blit")
	fmt.Println(removed, ok)
	// Output:
	// released blit
	// true false
}

func ExampleCache_Dispose() {
	c := resource.New()
	c.Dispose()

	_, err := resource.GetOrCreate(c, "shader/late", func() (*shader, error) {
		return &shader{name: "late"}, nil
	})
	fmt.Println(errors.Is(err, resource.ErrCacheDisposed))
	// Output: true
}
