package chart

import (
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-triage/pkg/model"
)

const (
	defaultWidth   = 320
	outerRadius    = 120.0
	chartHeight    = 260.0
	legendRowSpace = 22.0
	legendPadding  = 10.0
	fullCircleEps  = 1e-9
)

type donutView struct {
	Width   string        `json:"width"`
	Height  string        `json:"height"`
	Title   string        `json:"title"`
	Border  string        `json:"border"`
	Hover   string        `json:"hover"`
	Sectors []sectorView  `json:"sectors"`
	Legend  []legendEntry `json:"legend"`
}

type sectorView struct {
	Index   int    `json:"index"`
	Path    string `json:"path"`
	Color   string `json:"color"`
	Label   string `json:"label"`
	Percent string `json:"percent"`
}

type legendEntry struct {
	BoxX  string `json:"box_x"`
	BoxY  string `json:"box_y"`
	Box   string `json:"box"`
	TextX string `json:"text_x"`
	TextY string `json:"text_y"`
	Color string `json:"color"`
	Label string `json:"label"`
}

// layout computes the donut geometry. Sector angles are proportional to the
// raw values; zero-valued entries get no sector but keep their legend row.
func layout(spec Spec, width int, title string) donutView {
	if width <= 0 {
		width = defaultWidth
	}
	cx := float64(width) / 2
	cy := chartHeight / 2
	inner := outerRadius * spec.Cutout

	view := donutView{
		Title:  title,
		Border: strconv.Itoa(spec.BorderWidth),
		Hover:  strconv.Itoa(spec.HoverOffset),
	}

	total := 0.0
	for _, v := range spec.Values {
		total += v
	}

	start := -math.Pi / 2
	for i, v := range spec.Values {
		if total <= 0 || v <= 0 {
			continue
		}
		share := v / total
		sweep := share * 2 * math.Pi
		view.Sectors = append(view.Sectors, sectorView{
			Index:   i,
			Path:    sectorPath(cx, cy, outerRadius, inner, start, sweep),
			Color:   colorAt(spec.Colors, i),
			Label:   spec.Labels[i],
			Percent: strconv.Itoa(model.Percent(share)) + "%",
		})
		start += sweep
	}

	box := spec.LegendBoxWidth
	if box <= 0 {
		box = 14
	}
	legendTop := chartHeight + legendPadding
	for i, label := range spec.Labels {
		y := legendTop + float64(i)*legendRowSpace
		view.Legend = append(view.Legend, legendEntry{
			BoxX:  num(legendPadding * 2),
			BoxY:  num(y),
			Box:   strconv.Itoa(box),
			TextX: num(legendPadding*2 + float64(box) + 8),
			TextY: num(y + float64(box) - 2),
			Color: colorAt(spec.Colors, i),
			Label: label,
		})
	}

	height := chartHeight + legendPadding*2 + float64(len(spec.Labels))*legendRowSpace
	view.Width = strconv.Itoa(width)
	view.Height = num(height)
	return view
}

func sectorPath(cx, cy, outer, inner, start, sweep float64) string {
	if sweep >= 2*math.Pi-fullCircleEps {
		return ringPath(cx, cy, outer, inner)
	}

	end := start + sweep
	large := "0"
	if sweep > math.Pi {
		large = "1"
	}

	ox0, oy0 := polar(cx, cy, outer, start)
	ox1, oy1 := polar(cx, cy, outer, end)
	ix1, iy1 := polar(cx, cy, inner, end)
	ix0, iy0 := polar(cx, cy, inner, start)

	var b strings.Builder
	b.WriteString("M " + num(ox0) + " " + num(oy0))
	b.WriteString(" A " + num(outer) + " " + num(outer) + " 0 " + large + " 1 " + num(ox1) + " " + num(oy1))
	b.WriteString(" L " + num(ix1) + " " + num(iy1))
	b.WriteString(" A " + num(inner) + " " + num(inner) + " 0 " + large + " 0 " + num(ix0) + " " + num(iy0))
	b.WriteString(" Z")
	return b.String()
}

// ringPath draws a full annulus as two closed circles filled evenodd; a
// single arc cannot span 360 degrees.
func ringPath(cx, cy, outer, inner float64) string {
	circle := func(r float64, sweepFlag string) string {
		top := num(cy - r)
		bottom := num(cy + r)
		x := num(cx)
		rs := num(r)
		return "M " + x + " " + top +
			" A " + rs + " " + rs + " 0 1 " + sweepFlag + " " + x + " " + bottom +
			" A " + rs + " " + rs + " 0 1 " + sweepFlag + " " + x + " " + top + " Z"
	}
	return circle(outer, "1") + " " + circle(inner, "0")
}

func polar(cx, cy, r, angle float64) (float64, float64) {
	return cx + r*math.Cos(angle), cy + r*math.Sin(angle)
}

func colorAt(colors []string, i int) string {
	if i < len(colors) {
		return colors[i]
	}
	return ""
}

func num(v float64) string {
	s := strconv.FormatFloat(v, 'f', 2, 64)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" || s == "" {
		return "0"
	}
	return s
}
