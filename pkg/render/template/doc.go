// Package template defines the template seam used by the chart, ranking and
// page views. The gotemplate sub-package provides the pongo2-backed engine.
package template
