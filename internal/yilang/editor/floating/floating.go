// Пакет floating - чистая геометрия позиционирования всплывающих панелей
// редактора (попап свойств предложения, карточка слова) относительно
// прямоугольника ноды на экране. Логика не знает про DOM: на входе и выходе
// только прямоугольники и координаты.
package floating

// Rect - прямоугольник в экранных координатах. Ось Y направлена вниз.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

func (r Rect) Right() float64  { return r.X + r.Width }
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Contains сообщает, лежит ли other целиком внутри r.
func (r Rect) Contains(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.Right() <= r.Right() && other.Bottom() <= r.Bottom()
}

// Placement - сторона якоря, у которой размещается панель, и выравнивание
// вдоль этой стороны.
type Placement string

const (
	PlacementTop         Placement = "top"
	PlacementTopStart    Placement = "top-start"
	PlacementTopEnd      Placement = "top-end"
	PlacementBottom      Placement = "bottom"
	PlacementBottomStart Placement = "bottom-start"
	PlacementBottomEnd   Placement = "bottom-end"
	PlacementLeft        Placement = "left"
	PlacementRight       Placement = "right"
)

func (p Placement) side() Placement {
	switch p {
	case PlacementTopStart, PlacementTopEnd:
		return PlacementTop
	case PlacementBottomStart, PlacementBottomEnd:
		return PlacementBottom
	}
	return p
}

func (p Placement) opposite() Placement {
	switch p.side() {
	case PlacementTop:
		switch p {
		case PlacementTopStart:
			return PlacementBottomStart
		case PlacementTopEnd:
			return PlacementBottomEnd
		}
		return PlacementBottom
	case PlacementBottom:
		switch p {
		case PlacementBottomStart:
			return PlacementTopStart
		case PlacementBottomEnd:
			return PlacementTopEnd
		}
		return PlacementTop
	case PlacementLeft:
		return PlacementRight
	case PlacementRight:
		return PlacementLeft
	}
	return p
}

// Options управляют вычислением позиции.
type Options struct {
	Placement Placement // сторона по умолчанию, пустая = bottom
	Offset    float64   // зазор между якорем и панелью
	// Flip переворачивает панель на противоположную сторону, если на
	// запрошенной она не помещается в Boundary.
	Flip bool
	// Shift сдвигает панель вдоль стороны, чтобы она не вылезала за Boundary.
	Shift bool
	// Boundary - видимая область (вьюпорт). Нулевой Rect отключает flip/shift.
	Boundary Rect
}

// Position - результат вычисления.
type Position struct {
	X         float64
	Y         float64
	Placement Placement // фактическая сторона после flip
}

// ComputePosition возвращает координаты левого верхнего угла панели размера
// floating у якоря anchor согласно opts.
func ComputePosition(anchor Rect, floating Rect, opts Options) Position {
	placement := opts.Placement
	if placement == "" {
		placement = PlacementBottom
	}

	pos := place(anchor, floating, placement, opts.Offset)

	hasBoundary := opts.Boundary.Width > 0 && opts.Boundary.Height > 0
	if opts.Flip && hasBoundary && !fitsMainAxis(pos, floating, placement, opts.Boundary) {
		flipped := placement.opposite()
		alt := place(anchor, floating, flipped, opts.Offset)
		if fitsMainAxis(alt, floating, flipped, opts.Boundary) {
			pos, placement = alt, flipped
		}
	}

	if opts.Shift && hasBoundary {
		pos = shift(pos, floating, placement, opts.Boundary)
	}

	return Position{X: pos.X, Y: pos.Y, Placement: placement}
}

type point struct{ X, Y float64 }

func place(anchor Rect, floating Rect, placement Placement, offset float64) point {
	centerX := anchor.X + (anchor.Width-floating.Width)/2
	centerY := anchor.Y + (anchor.Height-floating.Height)/2

	switch placement {
	case PlacementTop:
		return point{centerX, anchor.Y - floating.Height - offset}
	case PlacementTopStart:
		return point{anchor.X, anchor.Y - floating.Height - offset}
	case PlacementTopEnd:
		return point{anchor.Right() - floating.Width, anchor.Y - floating.Height - offset}
	case PlacementBottomStart:
		return point{anchor.X, anchor.Bottom() + offset}
	case PlacementBottomEnd:
		return point{anchor.Right() - floating.Width, anchor.Bottom() + offset}
	case PlacementLeft:
		return point{anchor.X - floating.Width - offset, centerY}
	case PlacementRight:
		return point{anchor.Right() + offset, centerY}
	}
	return point{centerX, anchor.Bottom() + offset}
}

// fitsMainAxis проверяет, помещается ли панель в boundary по основной оси
// размещения. Поперечную ось чинит shift, а не flip.
func fitsMainAxis(pos point, floating Rect, placement Placement, boundary Rect) bool {
	switch placement.side() {
	case PlacementTop:
		return pos.Y >= boundary.Y
	case PlacementBottom:
		return pos.Y+floating.Height <= boundary.Bottom()
	case PlacementLeft:
		return pos.X >= boundary.X
	case PlacementRight:
		return pos.X+floating.Width <= boundary.Right()
	}
	return true
}

func shift(pos point, floating Rect, placement Placement, boundary Rect) point {
	switch placement.side() {
	case PlacementTop, PlacementBottom:
		if pos.X < boundary.X {
			pos.X = boundary.X
		}
		if pos.X+floating.Width > boundary.Right() {
			pos.X = boundary.Right() - floating.Width
		}
	case PlacementLeft, PlacementRight:
		if pos.Y < boundary.Y {
			pos.Y = boundary.Y
		}
		if pos.Y+floating.Height > boundary.Bottom() {
			pos.Y = boundary.Bottom() - floating.Height
		}
	}
	return pos
}
