package icons

import (
	"fmt"
	"strconv"

	"github.com/rustyoz/svg"
)

// Shape summarises the primitives an icon is built from
type Shape struct {
	Circles []Circle
	Rects   int
	Groups  int
}

// Circle is a circle primitive in icon coordinates
type Circle struct {
	X, Y, R float64
}

func (s Shape) String() string {
	return fmt.Sprintf("%d circles, %d rects, %d groups", len(s.Circles), s.Rects, s.Groups)
}

// Describe parses the vector source of an icon and lists its circles and rectangles
func Describe(kind Kind, size int) (*Shape, error) {
	src, err := SVG(kind, size)
	if err != nil {
		return nil, err
	}

	parsed, err := svg.ParseSvg(string(src), kind.String(), 1.0)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s icon: %w", kind, err)
	}

	shape := &Shape{}
	for i := range parsed.Groups {
		shape.Groups++
		collect(parsed.Groups[i].Elements, shape)
	}
	collect(parsed.Elements, shape)
	return shape, nil
}

func collect(elements []svg.DrawingInstructionParser, shape *Shape) {
	for _, element := range elements {
		switch e := element.(type) {
		case *svg.Circle:
			shape.Circles = append(shape.Circles, Circle{X: e.Cx, Y: e.Cy, R: e.Radius})
		case *svg.Rect:
			if _, err := strconv.ParseFloat(e.Width, 64); err == nil {
				shape.Rects++
			}
		case *svg.Group:
			shape.Groups++
			collect(e.Elements, shape)
		}
	}
}
