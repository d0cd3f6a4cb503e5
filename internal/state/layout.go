package state

// Content modes for background, foreground and mask images.
const (
	ModeAspectFill  = "AspectFill"
	ModeAspectFit   = "AspectFit"
	ModeScaleToFill = "ScaleToFill"
)

// Area is a rectangle on the surface.
type Area struct {
	X      float32
	Y      float32
	Width  float32
	Height float32
}

// FillArea places a srcW x srcH image inside a dstW x dstH surface according
// to mode. Unknown modes behave like AspectFit. The result is centred.
func FillArea(srcW, srcH, dstW, dstH float32, mode string) Area {
	if srcW <= 0 || srcH <= 0 || mode == ModeScaleToFill {
		return Area{Width: dstW, Height: dstH}
	}

	scaleX := dstW / srcW
	scaleY := dstH / srcH
	scale := scaleX
	if mode == ModeAspectFill {
		if scaleY > scale {
			scale = scaleY
		}
	} else if scaleY < scale {
		scale = scaleY
	}

	w := srcW * scale
	h := srcH * scale
	return Area{
		X:      (dstW - w) / 2,
		Y:      (dstH - h) / 2,
		Width:  w,
		Height: h,
	}
}

// Bounds returns the bounding box of points, or a zero Area when empty.
func Bounds(points []Point) Area {
	if len(points) == 0 {
		return Area{}
	}

	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, point := range points {
		if point.X < minX {
			minX = point.X
		}
		if point.X > maxX {
			maxX = point.X
		}
		if point.Y < minY {
			minY = point.Y
		}
		if point.Y > maxY {
			maxY = point.Y
		}
	}

	return Area{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Intersect returns the overlap of a and b, or a zero Area when disjoint.
func Intersect(a, b Area) Area {
	x0 := max(a.X, b.X)
	y0 := max(a.Y, b.Y)
	x1 := min(a.X+a.Width, b.X+b.Width)
	y1 := min(a.Y+a.Height, b.Y+b.Height)
	if x1 <= x0 || y1 <= y0 {
		return Area{}
	}
	return Area{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}
