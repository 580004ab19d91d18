package prefs

// Point is a two-dimensional coordinate setting value.
type Point struct {
	X, Y int
}

// Size is a width/height setting value.
type Size struct {
	Width, Height int
}

// Rect is a rectangle setting value (origin plus size).
type Rect struct {
	X, Y, Width, Height int
}
