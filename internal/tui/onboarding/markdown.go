package onboarding

import (
	"strings"

	"charm.land/glamour/v2"
)

// markdownCache memoizes rendered step copy for one width.
type markdownCache struct {
	width    int
	rendered map[string]string
}

// render renders markdown with glamour, falling back to the raw text.
func (c *markdownCache) render(content string, width int) string {
	if width > 100 {
		width = 100
	}
	if width < 20 {
		width = 20
	}
	if c.rendered == nil || c.width != width {
		c.rendered = make(map[string]string)
		c.width = width
	}
	if out, ok := c.rendered[content]; ok {
		return out
	}

	out := content
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		if rendered, err := r.Render(content); err == nil {
			out = strings.Trim(rendered, "\n")
		}
	}
	c.rendered[content] = out
	return out
}
