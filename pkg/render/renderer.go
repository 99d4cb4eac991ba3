// Package render holds the plumbing shared by the result views: a named
// registry for interchangeable output formats and the template seam in the
// template sub-packages.
package render

// Named is implemented by anything stored in a Registry.
type Named interface {
	Name() string
}

// Format describes an output format a view can produce.
type Format interface {
	Named
	ContentType() string
}
