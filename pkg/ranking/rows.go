package ranking

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-triage/pkg/model"
	"github.com/goliatone/go-triage/pkg/palette"
)

// DefaultCaption heads every rebuilt list.
const DefaultCaption = "Top 3 diagnósticos prováveis"

// Row is one ranked bar. Width and Text carry the same rounded percentage.
type Row struct {
	Index   int    `json:"index"`
	Label   string `json:"label"`
	Percent int    `json:"percent"`
	Width   string `json:"width"`
	Text    string `json:"text"`
	Color   string `json:"color"`
}

// View is the complete content of the ranking container.
type View struct {
	Caption string `json:"caption"`
	Rows    []Row  `json:"rows"`
}

// Rows builds the bar view model for top in received order. Entry i is
// colored with p[i]; more entries than colors is an error.
func Rows(top []model.Entry, p palette.Palette) ([]Row, error) {
	colors, err := p.Take(len(top))
	if err != nil {
		return nil, fmt.Errorf("ranking: %w", err)
	}

	rows := make([]Row, len(top))
	for i, entry := range top {
		pct := model.Percent(entry.Probability)
		label := strconv.Itoa(pct) + "%"
		rows[i] = Row{
			Index:   i,
			Label:   entry.Label,
			Percent: pct,
			Width:   label,
			Text:    label,
			Color:   colors[i],
		}
	}
	return rows, nil
}
