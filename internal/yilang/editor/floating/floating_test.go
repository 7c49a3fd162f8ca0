package floating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	anchor = Rect{X: 100, Y: 100, Width: 50, Height: 20}
	panel  = Rect{Width: 80, Height: 40}
)

func TestComputePositionPlacements(t *testing.T) {
	cases := []struct {
		placement Placement
		x, y      float64
	}{
		{PlacementBottom, 85, 128},
		{PlacementBottomStart, 100, 128},
		{PlacementBottomEnd, 70, 128},
		{PlacementTop, 85, 52},
		{PlacementTopStart, 100, 52},
		{PlacementTopEnd, 70, 52},
		{PlacementLeft, 12, 90},
		{PlacementRight, 158, 90},
	}

	for _, c := range cases {
		t.Run(string(c.placement), func(t *testing.T) {
			pos := ComputePosition(anchor, panel, Options{Placement: c.placement, Offset: 8})
			assert.Equal(t, c.x, pos.X)
			assert.Equal(t, c.y, pos.Y)
			assert.Equal(t, c.placement, pos.Placement)
		})
	}
}

func TestDefaultPlacementIsBottom(t *testing.T) {
	pos := ComputePosition(anchor, panel, Options{})
	assert.Equal(t, PlacementBottom, pos.Placement)
	assert.Equal(t, 85.0, pos.X)
	assert.Equal(t, 120.0, pos.Y)
}

func TestFlipWhenNoRoomBelow(t *testing.T) {
	viewport := Rect{Width: 500, Height: 500}
	low := Rect{X: 200, Y: 460, Width: 50, Height: 20}

	pos := ComputePosition(low, panel, Options{
		Placement: PlacementBottom,
		Offset:    8,
		Flip:      true,
		Boundary:  viewport,
	})
	assert.Equal(t, PlacementTop, pos.Placement)
	assert.Equal(t, 412.0, pos.Y)
}

func TestFlipKeepsAlignment(t *testing.T) {
	viewport := Rect{Width: 500, Height: 500}
	low := Rect{X: 200, Y: 460, Width: 50, Height: 20}

	pos := ComputePosition(low, panel, Options{
		Placement: PlacementBottomStart,
		Flip:      true,
		Boundary:  viewport,
	})
	assert.Equal(t, PlacementTopStart, pos.Placement)
	assert.Equal(t, 200.0, pos.X)
}

func TestNoFlipWhenOppositeDoesNotFit(t *testing.T) {
	// Тесно с обеих сторон - остаемся на запрошенной
	viewport := Rect{Width: 300, Height: 100}
	mid := Rect{X: 100, Y: 40, Width: 50, Height: 20}
	tall := Rect{Width: 80, Height: 60}

	pos := ComputePosition(mid, tall, Options{
		Placement: PlacementBottom,
		Flip:      true,
		Boundary:  viewport,
	})
	assert.Equal(t, PlacementBottom, pos.Placement)
}

func TestShiftClampsToBoundary(t *testing.T) {
	viewport := Rect{Width: 500, Height: 500}

	t.Run("left edge", func(t *testing.T) {
		edge := Rect{X: 0, Y: 100, Width: 20, Height: 20}
		pos := ComputePosition(edge, panel, Options{
			Placement: PlacementBottom,
			Shift:     true,
			Boundary:  viewport,
		})
		assert.Equal(t, 0.0, pos.X)
	})

	t.Run("right edge", func(t *testing.T) {
		edge := Rect{X: 470, Y: 100, Width: 20, Height: 20}
		pos := ComputePosition(edge, panel, Options{
			Placement: PlacementBottom,
			Shift:     true,
			Boundary:  viewport,
		})
		assert.Equal(t, 420.0, pos.X)
	})

	t.Run("vertical for side placement", func(t *testing.T) {
		edge := Rect{X: 200, Y: 0, Width: 20, Height: 20}
		pos := ComputePosition(edge, panel, Options{
			Placement: PlacementRight,
			Shift:     true,
			Boundary:  viewport,
		})
		assert.Equal(t, 0.0, pos.Y)
	})
}

func TestZeroBoundaryDisablesFlipAndShift(t *testing.T) {
	low := Rect{X: 0, Y: 1000, Width: 50, Height: 20}
	pos := ComputePosition(low, panel, Options{
		Placement: PlacementBottom,
		Flip:      true,
		Shift:     true,
	})
	// Без вьюпорта панель остается там, куда просили
	assert.Equal(t, PlacementBottom, pos.Placement)
	assert.Equal(t, 1020.0, pos.Y)
}

func TestRectHelpers(t *testing.T) {
	r := Rect{X: 10, Y: 20, Width: 100, Height: 50}
	assert.Equal(t, 110.0, r.Right())
	assert.Equal(t, 70.0, r.Bottom())
	assert.True(t, r.Contains(Rect{X: 20, Y: 30, Width: 10, Height: 10}))
	assert.False(t, r.Contains(Rect{X: 105, Y: 30, Width: 10, Height: 10}))
}
