package plot_test

import (
	"fmt"
	"os"

	"github.com/matzehuels/starmap/pkg/geom"
	"github.com/matzehuels/starmap/pkg/render/plot"
)

func Example() {
	p, err := plot.New(plot.Settings{
		Width:             200,
		Height:            200,
		Scale:             1,
		SystemRadius:      3,
		Names:             true,
		PrimaryFontSize:   10,
		SecondaryFontSize: 7,
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	p.AddSystem(plot.System{Name: "Terra", Coordinates: geom.Pt(0, 0)})
	p.AddSystem(plot.System{Name: "Far Away", Coordinates: geom.Pt(900, 0)})

	if _, err := p.WriteTo(os.Stdout); err != nil {
		fmt.Println("Error:", err)
	}
	// Output:
	// <!DOCTYPE svg PUBLIC "-//W3C//DTD SVG 1.1//EN" "http://www.w3.org/Graphics/SVG/1.1/DTD/svg11.dtd">
	// <svg version="1.1" xmlns="http://www.w3.org/2000/svg" height="200" width="200">
	//   <rect height="200" width="200" fill="#000000" />
	//   <circle cx="100" cy="100" r="3" stroke="#000000" stroke-width="1" fill="#ffffff" />
	//   <text x="100" y="86" fill="#eeeeee" text-anchor="middle" font-family="sans-serif" font-size="10" stroke="black" stroke-width="0.25">Terra</text>
	// </svg>
}

func ExampleTransform() {
	t := plot.Transform{Scale: 2, Focus: geom.Pt(10, 10), CenterX: 100, CenterY: 50}

	x, y := t.ToDevice(geom.Pt(15, 5))
	fmt.Println(x, y)
	fmt.Println(t.ToWorld(x, y))
	// Output:
	// 110 60
	// {15 5}
}
