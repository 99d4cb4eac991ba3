package web

import (
	"net/url"

	"github.com/goliatone/go-triage/pkg/model"
)

type pageView struct {
	Fields []fieldView `json:"fields"`
	Chart  string      `json:"chart"`
	Bars   string      `json:"bars"`
	Alert  string      `json:"alert"`
}

type fieldView struct {
	Name    string       `json:"name"`
	Label   string       `json:"label"`
	Kind    string       `json:"kind"`
	Value   string       `json:"value"`
	Checked bool         `json:"checked"`
	Options []optionView `json:"options,omitempty"`
}

type optionView struct {
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
}

// fieldViews echoes the last submitted values back into the form.
func fieldViews(catalog model.Catalog, form url.Values) []fieldView {
	out := make([]fieldView, 0, len(catalog))
	for _, field := range catalog {
		value := form.Get(field.Name)
		view := fieldView{
			Name:  field.Name,
			Label: field.Label,
			Kind:  string(field.Kind),
			Value: value,
		}
		if view.Label == "" {
			view.Label = field.Name
		}
		switch field.Kind {
		case model.FieldKindFlag:
			view.Checked = value != "" && value != "0" && value != "false" && value != "off"
			view.Value = ""
		case model.FieldKindEnum:
			for _, option := range field.Options {
				view.Options = append(view.Options, optionView{Value: option, Selected: option == value})
			}
		}
		out = append(out, view)
	}
	return out
}
