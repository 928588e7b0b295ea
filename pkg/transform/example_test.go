package transform_test

import (
	"fmt"

	"github.com/matzehuels/carousel/pkg/geom"
	"github.com/matzehuels/carousel/pkg/layout"
	"github.com/matzehuels/carousel/pkg/transform"
)

func ExampleByName() {
	tr, err := transform.ByName("zoom-out", transform.Options{
		ItemSize: geom.Sz(200, 100),
		Spacing:  10,
	})
	if err != nil {
		panic(err)
	}

	for _, pos := range []float64{0, 0.5, 2} {
		a := layout.Attributes{Size: geom.Sz(200, 100), Position: pos, Alpha: 1, Scale: 1}
		tr.Apply(&a)
		fmt.Printf("pos=%g scale=%.2f alpha=%.2f\n", pos, a.Scale, a.Alpha)
	}
	// Output:
	// pos=0 scale=1.00 alpha=1.00
	// pos=0.5 scale=0.65 alpha=0.60
	// pos=2 scale=1.00 alpha=0.00
}

func ExampleNames() {
	for _, name := range transform.Names() {
		fmt.Println(name)
	}
	// Output:
	// cover-flow
	// cross-fading
	// cubic
	// depth
	// ferris-wheel
	// inverted-ferris-wheel
	// linear
	// overlap
	// zoom-out
}
