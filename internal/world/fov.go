package world

// octantTransforms maps each of the eight octants onto the first one.
// Each entry is xx, xy, yx, yy.
var octantTransforms = [8][4]int{
	{1, 0, 0, -1},
	{0, 1, -1, 0},
	{0, 1, 1, 0},
	{1, 0, 0, 1},
	{-1, 0, 0, 1},
	{0, -1, 1, 0},
	{0, -1, -1, 0},
	{-1, 0, 0, -1},
}

// FieldOfView returns every tile visible from origin within radius, using
// recursive shadowcasting. The origin is always included, and opaque tiles
// that bound the view are lit so walls show up.
func FieldOfView(origin Point, radius int, m *Map) []Point {
	fov := &fovScan{
		m:       m,
		origin:  origin,
		radius:  radius,
		seen:    make(map[int]struct{}),
		visible: make([]Point, 0, (2*radius+1)*(2*radius+1)/2),
	}
	fov.light(origin.X, origin.Y)
	for _, t := range octantTransforms {
		fov.castLight(1, 1.0, 0.0, t[0], t[1], t[2], t[3])
	}
	return fov.visible
}

type fovScan struct {
	m       *Map
	origin  Point
	radius  int
	seen    map[int]struct{}
	visible []Point
}

func (f *fovScan) light(x, y int) {
	if !f.m.InBounds(x, y) {
		return
	}
	idx := f.m.Idx(x, y)
	if _, ok := f.seen[idx]; ok {
		return
	}
	f.seen[idx] = struct{}{}
	f.visible = append(f.visible, Point{X: x, Y: y})
}

func (f *fovScan) castLight(row int, start, end float64, xx, xy, yx, yy int) {
	if start < end {
		return
	}
	radiusSq := f.radius * f.radius
	newStart := 0.0
	for j := row; j <= f.radius; j++ {
		dx, dy := -j-1, -j
		blocked := false
		for dx <= 0 {
			dx++
			x := f.origin.X + dx*xx + dy*xy
			y := f.origin.Y + dx*yx + dy*yy
			leftSlope := (float64(dx) - 0.5) / (float64(dy) + 0.5)
			rightSlope := (float64(dx) + 0.5) / (float64(dy) - 0.5)
			if start < rightSlope {
				continue
			}
			if end > leftSlope {
				break
			}

			if dx*dx+dy*dy <= radiusSq {
				f.light(x, y)
			}

			opaque := f.m.IsOpaque(x, y)
			if blocked {
				if opaque {
					newStart = rightSlope
					continue
				}
				blocked = false
				start = newStart
			} else if opaque && j < f.radius {
				blocked = true
				f.castLight(j+1, start, leftSlope, xx, xy, yx, yy)
				newStart = rightSlope
			}
		}
		if blocked {
			break
		}
	}
}
