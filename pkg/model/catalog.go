package model

// FieldKind selects the coercion applied to a control when a snapshot is read.
type FieldKind string

const (
	FieldKindText    FieldKind = "text"
	FieldKindEnum    FieldKind = "enum"
	FieldKindNumeric FieldKind = "numeric"
	FieldKindFlag    FieldKind = "flag"
)

// FieldSpec describes one named control in the triage form. Name doubles as
// the control identifier and the payload key.
type FieldSpec struct {
	Name    string    `json:"name" yaml:"name"`
	Kind    FieldKind `json:"kind" yaml:"kind"`
	Label   string    `json:"label,omitempty" yaml:"label,omitempty"`
	Options []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// Catalog is the ordered set of fields read on every submission.
type Catalog []FieldSpec

// Names returns the field names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, 0, len(c))
	for _, field := range c {
		names = append(names, field.Name)
	}
	return names
}

// Lookup finds a field by name.
func (c Catalog) Lookup(name string) (FieldSpec, bool) {
	for _, field := range c {
		if field.Name == name {
			return field, true
		}
	}
	return FieldSpec{}, false
}

// OfKind returns the subset of fields with the given kind, keeping order.
func (c Catalog) OfKind(kind FieldKind) Catalog {
	var out Catalog
	for _, field := range c {
		if field.Kind == kind {
			out = append(out, field)
		}
	}
	return out
}

// DefaultCatalog returns the fields expected by the /api/predict contract.
func DefaultCatalog() Catalog {
	return Catalog{
		{Name: "nome", Kind: FieldKindText, Label: "Nome"},
		{Name: "sexo", Kind: FieldKindEnum, Label: "Sexo", Options: []string{"Masculino", "Feminino"}},
		{Name: "idade", Kind: FieldKindNumeric, Label: "Idade"},
		{Name: "temperatura", Kind: FieldKindNumeric, Label: "Temperatura (°C)"},
		{Name: "frequencia_cardiaca", Kind: FieldKindNumeric, Label: "Frequência cardíaca (bpm)"},
		{Name: "pressao_sistolica", Kind: FieldKindNumeric, Label: "Pressão sistólica (mmHg)"},
		{Name: "pressao_diastolica", Kind: FieldKindNumeric, Label: "Pressão diastólica (mmHg)"},
		{Name: "saturacao", Kind: FieldKindNumeric, Label: "Saturação O₂ (%)"},
		{Name: "tosse", Kind: FieldKindFlag, Label: "Tosse"},
		{Name: "fadiga", Kind: FieldKindFlag, Label: "Fadiga"},
		{Name: "sede_excessiva", Kind: FieldKindFlag, Label: "Sede excessiva"},
		{Name: "vomitos", Kind: FieldKindFlag, Label: "Vômitos"},
		{Name: "falta_ar", Kind: FieldKindFlag, Label: "Falta de ar"},
		{Name: "sintomas_texto", Kind: FieldKindText, Label: "Sintomas (texto livre)"},
	}
}
