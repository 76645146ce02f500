package theme

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name        string
		wantNormal  color.RGBA
		translucent bool
	}{
		{name: Dark, wantNormal: color.RGBA{40, 40, 40, 255}},
		{name: Light, wantNormal: color.RGBA{220, 220, 220, 255}},
		{name: Neon, wantNormal: color.RGBA{0, 0, 0, 255}},
		{name: Glass, wantNormal: color.RGBA{100, 100, 100, 255}, translucent: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			th, err := Lookup(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.name, th.Name)
			assert.Equal(t, tt.wantNormal, th.Normal)
			assert.Equal(t, tt.translucent, th.Translucent)
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("solarized")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownTheme))
}

func TestOnlyGlassIsTranslucent(t *testing.T) {
	for _, name := range Names() {
		th, err := Lookup(name)
		require.NoError(t, err)
		if name == Glass {
			assert.True(t, th.Translucent)
			assert.InDelta(t, 0.4, th.Alpha, 1e-9)
		} else {
			assert.False(t, th.Translucent, "theme %s", name)
		}
	}
}

func TestFill(t *testing.T) {
	th, err := Lookup(Dark)
	require.NoError(t, err)

	assert.Equal(t, th.Hover, th.Fill(true))
	assert.Equal(t, th.Normal, th.Fill(false))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{Dark, Glass, Light, Neon}, Names())
}
