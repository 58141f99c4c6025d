package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolateColor(t *testing.T) {
	assert.Equal(t, "#000000", InterpolateColor("#000000", "#ffffff", 0))
	assert.Equal(t, "#ffffff", InterpolateColor("#000000", "#ffffff", 1))
	assert.Equal(t, "#7f7f7f", InterpolateColor("#000000", "#ffffff", 0.5))
}

func TestParseHexColor(t *testing.T) {
	r, g, b := ParseHexColor("#cba6f7")
	assert.Equal(t, [3]uint8{0xcb, 0xa6, 0xf7}, [3]uint8{r, g, b})

	r, g, b = ParseHexColor("bogus")
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
}

func TestFadeColor(t *testing.T) {
	th := NewCatppuccinMocha()
	assert.Equal(t, th.BgBase, th.FadeColor(-1))
	assert.Equal(t, th.BgBase, th.FadeColor(0))
	assert.Equal(t, th.FgBase, th.FadeColor(1))

	mid := th.FadeColor(0.5)
	assert.NotEqual(t, th.BgBase, mid)
	assert.NotEqual(t, th.FgBase, mid)
}

func TestCurrent_IsStable(t *testing.T) {
	assert.Same(t, Current(), Current())
	assert.Same(t, Current().S(), Current().S())
	assert.Equal(t, "catppuccin-mocha", Current().Name)
}

func TestApplyGradient(t *testing.T) {
	assert.Empty(t, ApplyGradient("", "#000000", "#ffffff"))

	out := ApplyGradient("a b", "#000000", "#ffffff")
	assert.Contains(t, out, "a")
	assert.Contains(t, out, "b")
	assert.Contains(t, out, " ")
}
