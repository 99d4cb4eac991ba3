// Package snapshot reads the triage form controls and normalises them into a
// PredictionRequest. Reading never fails at runtime: a control missing from
// the source is a wiring defect between the catalog and the page markup and
// panics with a MissingControlError. Call Verify during startup or in
// integration tests to surface such defects before the first submission.
package snapshot

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-triage/pkg/model"
)

// MissingControlError names catalog fields absent from a Source.
type MissingControlError struct {
	Fields []string
}

func (e *MissingControlError) Error() string {
	return fmt.Sprintf("snapshot: missing controls: %s", strings.Join(e.Fields, ", "))
}

// Reader builds requests from a fixed catalog.
type Reader struct {
	catalog model.Catalog
}

// NewReader constructs a Reader. An empty catalog selects model.DefaultCatalog.
func NewReader(catalog model.Catalog) *Reader {
	if len(catalog) == 0 {
		catalog = model.DefaultCatalog()
	}
	return &Reader{catalog: catalog}
}

// Catalog returns the fields read by r.
func (r *Reader) Catalog() model.Catalog {
	return r.catalog
}

// Read snapshots every catalog control from src. It panics with a
// *MissingControlError when a control does not exist.
func (r *Reader) Read(src Source) model.PredictionRequest {
	fields := make([]model.FieldValue, 0, len(r.catalog))
	var missing []string

	for _, field := range r.catalog {
		value, ok := readField(src, field)
		if !ok {
			missing = append(missing, field.Name)
			continue
		}
		fields = append(fields, model.FieldValue{Name: field.Name, Value: value})
	}

	if len(missing) > 0 {
		panic(&MissingControlError{Fields: missing})
	}
	return model.NewPredictionRequest(fields...)
}

// Verify reports catalog fields that src cannot supply.
func (r *Reader) Verify(src Source) error {
	return Verify(src, r.catalog)
}

// Verify reports catalog fields that src cannot supply.
func Verify(src Source, catalog model.Catalog) error {
	var missing []string
	for _, field := range catalog {
		if _, ok := readField(src, field); !ok {
			missing = append(missing, field.Name)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	return &MissingControlError{Fields: missing}
}

func readField(src Source, field model.FieldSpec) (model.Value, bool) {
	if src == nil {
		return model.Value{}, false
	}
	if field.Kind == model.FieldKindFlag {
		checked, ok := src.Checked(field.Name)
		if !ok {
			return model.Value{}, false
		}
		return NormalizeFlag(checked), true
	}

	raw, ok := src.Value(field.Name)
	if !ok {
		return model.Value{}, false
	}
	switch field.Kind {
	case model.FieldKindNumeric:
		return NormalizeNumeric(raw), true
	case model.FieldKindEnum:
		return NormalizeEnum(raw), true
	default:
		return NormalizeText(raw), true
	}
}
