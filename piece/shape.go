package piece

import (
	"iter"
	"strconv"
)

// Shape identifies one rotation state of a tetromino. Rotating a piece
// selects a different Shape; shapes themselves are never transformed.
type Shape uint8

const (
	Cube Shape = iota
	LineHorizontal
	LineVertical
	J0
	JR
	J2
	JL
	L0
	LR
	L2
	LL
	S0
	SR
	Z0
	ZR
	T0
	TR
	T2
	TL

	// Count is the number of shapes in the catalog.
	Count = int(TL) + 1
)

const (
	x = true
	o = false
)

type entry struct {
	name   string
	width  int
	height int
	bitmap []bool
	color  Color
	next   Shape
	shift  Point
}

// catalog is indexed by Shape. Bitmaps are row-major over the bounding box.
// Rotation shifts keep the shape anchored inside a 3x3 rotation frame:
// every cycle of shifts sums to the zero vector.
var catalog = [Count]entry{
	Cube: {
		name: "cube", width: 2, height: 2, color: ColorYellow,
		bitmap: []bool{
			x, x,
			x, x,
		},
		next: Cube,
	},
	LineHorizontal: {
		name: "line-h", width: 4, height: 1, color: ColorCyan,
		bitmap: []bool{
			x, x, x, x,
		},
		next: LineVertical, shift: Point{2, -1},
	},
	LineVertical: {
		name: "line-v", width: 1, height: 4, color: ColorCyan,
		bitmap: []bool{
			x,
			x,
			x,
			x,
		},
		next: LineHorizontal, shift: Point{-2, 1},
	},
	J0: {
		name: "j-0", width: 3, height: 2, color: ColorBlue,
		bitmap: []bool{
			x, o, o,
			x, x, x,
		},
		next: JR, shift: Point{1, 0},
	},
	JR: {
		name: "j-r", width: 2, height: 3, color: ColorBlue,
		bitmap: []bool{
			x, x,
			x, o,
			x, o,
		},
		next: J2, shift: Point{-1, 1},
	},
	J2: {
		name: "j-2", width: 3, height: 2, color: ColorBlue,
		bitmap: []bool{
			x, x, x,
			o, o, x,
		},
		next: JL, shift: Point{0, -1},
	},
	JL: {
		name: "j-l", width: 2, height: 3, color: ColorBlue,
		bitmap: []bool{
			o, x,
			o, x,
			x, x,
		},
		next: J0,
	},
	L0: {
		name: "l-0", width: 3, height: 2, color: ColorOrange,
		bitmap: []bool{
			o, o, x,
			x, x, x,
		},
		next: LR, shift: Point{1, 0},
	},
	LR: {
		name: "l-r", width: 2, height: 3, color: ColorOrange,
		bitmap: []bool{
			x, o,
			x, o,
			x, x,
		},
		next: L2, shift: Point{-1, 1},
	},
	L2: {
		name: "l-2", width: 3, height: 2, color: ColorOrange,
		bitmap: []bool{
			x, x, x,
			x, o, o,
		},
		next: LL, shift: Point{0, -1},
	},
	LL: {
		name: "l-l", width: 2, height: 3, color: ColorOrange,
		bitmap: []bool{
			x, x,
			o, x,
			o, x,
		},
		next: L0,
	},
	S0: {
		name: "s-0", width: 3, height: 2, color: ColorGreen,
		bitmap: []bool{
			o, x, x,
			x, x, o,
		},
		next: SR, shift: Point{1, 0},
	},
	SR: {
		name: "s-r", width: 2, height: 3, color: ColorGreen,
		bitmap: []bool{
			x, o,
			x, x,
			o, x,
		},
		next: S0, shift: Point{-1, 0},
	},
	Z0: {
		name: "z-0", width: 3, height: 2, color: ColorRed,
		bitmap: []bool{
			x, x, o,
			o, x, x,
		},
		next: ZR, shift: Point{1, 0},
	},
	ZR: {
		name: "z-r", width: 2, height: 3, color: ColorRed,
		bitmap: []bool{
			o, x,
			x, x,
			x, o,
		},
		next: Z0, shift: Point{-1, 0},
	},
	T0: {
		name: "t-0", width: 3, height: 2, color: ColorPurple,
		bitmap: []bool{
			o, x, o,
			x, x, x,
		},
		next: TR, shift: Point{1, 0},
	},
	TR: {
		name: "t-r", width: 2, height: 3, color: ColorPurple,
		bitmap: []bool{
			x, o,
			x, x,
			x, o,
		},
		next: T2, shift: Point{-1, 1},
	},
	T2: {
		name: "t-2", width: 3, height: 2, color: ColorPurple,
		bitmap: []bool{
			x, x, x,
			o, x, o,
		},
		next: TL, shift: Point{0, -1},
	},
	TL: {
		name: "t-l", width: 2, height: 3, color: ColorPurple,
		bitmap: []bool{
			o, x,
			x, x,
			o, x,
		},
		next: T0,
	},
}

func (s Shape) entry() *entry {
	if int(s) >= Count {
		panic("invalid shape identifier " + strconv.Itoa(int(s)))
	}
	return &catalog[s]
}

// Valid reports whether s names a catalog entry.
func (s Shape) Valid() bool {
	return int(s) < Count
}

// Bitmap returns the row-major occupancy of the shape's bounding box.
// The slice is shared and must not be modified.
func (s Shape) Bitmap() []bool {
	return s.entry().bitmap
}

// Size returns the bounding box width and height.
func (s Shape) Size() (int, int) {
	e := s.entry()
	return e.width, e.height
}

// Width returns the bounding box width.
func (s Shape) Width() int {
	return s.entry().width
}

// Height returns the bounding box height.
func (s Shape) Height() int {
	return s.entry().height
}

// SpawnOffset is added to the board's horizontal center to place a freshly
// spawned shape. Its Y component is always zero.
func (s Shape) SpawnOffset() Point {
	return Point{X: -(s.entry().width / 2)}
}

// Color returns the canonical display color of the shape.
func (s Shape) Color() Color {
	return s.entry().color
}

// Rotate returns the clockwise successor of s and the shift to apply to the
// anchor so the rotated shape keeps its place.
func (s Shape) Rotate() (Shape, Point) {
	e := s.entry()
	return e.next, e.shift
}

// Cells yields the local offset of every occupied cell in row-major order.
func (s Shape) Cells() iter.Seq[Point] {
	e := s.entry()
	return func(yield func(Point) bool) {
		for i, filled := range e.bitmap {
			if !filled {
				continue
			}
			if !yield(Point{X: i % e.width, Y: i / e.width}) {
				return
			}
		}
	}
}

func (s Shape) String() string {
	if !s.Valid() {
		return "shape(" + strconv.Itoa(int(s)) + ")"
	}
	return catalog[s].name
}
