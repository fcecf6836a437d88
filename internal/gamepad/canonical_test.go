package gamepad

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonNames(t *testing.T) {
	for b := Button(0); b < ButtonCount; b++ {
		got, err := ParseButton(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, got)
	}

	b, err := ParseButton(" DPAD_UP ")
	require.NoError(t, err)
	assert.Equal(t, ButtonDpadUp, b)

	_, err = ParseButton("turbo")
	assert.Error(t, err)
	assert.Equal(t, "button(42)", Button(42).String())
}

func TestAxisNames(t *testing.T) {
	for a := Axis(0); a < AxisCount; a++ {
		got, err := ParseAxis(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := ParseAxis("throttle")
	assert.Error(t, err)
}

func TestRangeKindNames(t *testing.T) {
	for _, k := range []RangeKind{MinusOneToOne, ZeroToOne, NegativeOneReleased} {
		got, err := ParseRangeKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	k, err := ParseRangeKind("")
	require.NoError(t, err)
	assert.Equal(t, MinusOneToOne, k)
}

func TestAxisSetGet(t *testing.T) {
	axes := xinputAxes()
	require.NotNil(t, axes.Get(AxisRightTrigger))
	assert.Equal(t, 5, axes.Get(AxisRightTrigger).Index)
	assert.Nil(t, AxisSet{}.Get(AxisLeftX))
	assert.Nil(t, axes.Get(AxisCount))
}
