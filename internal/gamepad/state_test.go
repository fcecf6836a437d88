package gamepad

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonSetJSON(t *testing.T) {
	var s ButtonSet
	s[ButtonA] = true
	s[ButtonDpadLeft] = true

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var m map[string]bool
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Len(t, m, int(ButtonCount))
	assert.True(t, m["a"])
	assert.True(t, m["dpad_left"])
	assert.False(t, m["touchpad"])

	var back ButtonSet
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)

	assert.Error(t, json.Unmarshal([]byte(`{"turbo":true}`), &back))
}

func TestButtonSetPressedOrder(t *testing.T) {
	var s ButtonSet
	s[ButtonStart] = true
	s[ButtonA] = true
	assert.Equal(t, []string{"a", "start"}, s.Pressed())
}

func TestDisconnectedStateIsNeutral(t *testing.T) {
	s := DisconnectedState()
	assert.False(t, s.Connected)
	assert.Empty(t, s.Buttons.Pressed())
	assert.Equal(t, SticksState{}, s.Sticks)
	assert.Equal(t, TriggersState{}, s.Triggers)
}

func TestComputeDelta(t *testing.T) {
	old := GamepadState{Connected: true, ID: "pad", Profile: "Xbox"}

	d := ComputeDelta(old, old)
	assert.True(t, d.IsEmpty())

	small := old
	small.Sticks.Left.X = 0.005
	assert.True(t, ComputeDelta(old, small).IsEmpty(), "below the analog threshold")

	moved := old
	moved.Sticks.Right.Y = 0.5
	moved.Buttons[ButtonB] = true
	d = ComputeDelta(old, moved)
	require.NotNil(t, d.Sticks)
	require.NotNil(t, d.Buttons)
	assert.Nil(t, d.Triggers)
	assert.Nil(t, d.Connected)
	assert.Equal(t, 0.5, d.Sticks.Right.Y)
	assert.True(t, d.Buttons[ButtonB])

	d = ComputeDelta(old, DisconnectedState())
	require.NotNil(t, d.Connected)
	assert.False(t, *d.Connected)
	require.NotNil(t, d.Profile)
	assert.Equal(t, "", *d.Profile)
}
