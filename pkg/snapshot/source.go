package snapshot

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-triage/pkg/model"
)

// Source exposes the current state of the form controls by identifier. The
// boolean result reports whether the control exists at all.
type Source interface {
	Value(id string) (string, bool)
	Checked(id string) (bool, bool)
}

// Controls is an in-memory Source used by headless callers and tests.
type Controls struct {
	Values map[string]string
	Checks map[string]bool
}

// NewControls returns an empty control set.
func NewControls() *Controls {
	return &Controls{
		Values: make(map[string]string),
		Checks: make(map[string]bool),
	}
}

// Blank returns a control set with every catalog field present and empty.
func Blank(catalog model.Catalog) *Controls {
	c := NewControls()
	for _, field := range catalog {
		if field.Kind == model.FieldKindFlag {
			c.Checks[field.Name] = false
			continue
		}
		c.Values[field.Name] = ""
	}
	return c
}

// Set records a value control and returns the receiver for chaining.
func (c *Controls) Set(id, value string) *Controls {
	if c.Values == nil {
		c.Values = make(map[string]string)
	}
	c.Values[id] = value
	return c
}

// Check records a checkbox control and returns the receiver for chaining.
func (c *Controls) Check(id string, checked bool) *Controls {
	if c.Checks == nil {
		c.Checks = make(map[string]bool)
	}
	c.Checks[id] = checked
	return c
}

func (c *Controls) Value(id string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.Values[id]
	return v, ok
}

func (c *Controls) Checked(id string) (bool, bool) {
	if c == nil {
		return false, false
	}
	v, ok := c.Checks[id]
	return v, ok
}

// FromForm adapts a posted HTML form. Browsers omit unchecked checkboxes from
// the submission, so every flag field of the catalog is treated as present and
// considered checked when any non-empty value other than "0"/"false"/"off" was
// posted for it.
func FromForm(form url.Values, catalog model.Catalog) Source {
	flags := make(map[string]struct{})
	for _, field := range catalog.OfKind(model.FieldKindFlag) {
		flags[field.Name] = struct{}{}
	}
	return formSource{form: form, flags: flags}
}

type formSource struct {
	form  url.Values
	flags map[string]struct{}
}

func (s formSource) Value(id string) (string, bool) {
	values, ok := s.form[id]
	if !ok {
		return "", false
	}
	if len(values) == 0 {
		return "", true
	}
	return values[0], true
}

func (s formSource) Checked(id string) (bool, bool) {
	_, isFlag := s.flags[id]
	values, posted := s.form[id]
	if !isFlag && !posted {
		return false, false
	}
	for _, value := range values {
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "", "0", "false", "off":
			continue
		default:
			return true, true
		}
	}
	return false, true
}
