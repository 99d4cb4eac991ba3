package chart

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	svgPolicyOnce sync.Once
	svgPolicy     *bluemonday.Policy
)

// SanitizeSVG strips everything but the drawing elements the donut uses.
func SanitizeSVG(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(svgSanitizer().Sanitize(trimmed))
}

func svgSanitizer() *bluemonday.Policy {
	svgPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("svg", "g", "path", "rect", "circle", "text", "title")

		policy.AllowAttrs(
			"xmlns", "viewBox", "width", "height", "role", "class", "aria-label",
		).OnElements("svg")

		policy.AllowAttrs(
			"class", "stroke", "stroke-width", "font-family", "font-size", "fill",
		).OnElements("g")

		policy.AllowAttrs("class", "d", "fill", "fill-rule").OnElements("path")
		policy.AllowAttrs("x", "y", "width", "height", "fill").OnElements("rect")
		policy.AllowAttrs("cx", "cy", "r", "fill").OnElements("circle")
		policy.AllowAttrs("x", "y", "fill").OnElements("text")

		svgPolicy = policy
	})
	return svgPolicy
}
