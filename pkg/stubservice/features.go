package stubservice

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Features is a coerced request.
type Features struct {
	Idade             int
	Masculino         bool
	Temperatura       float64
	FrequenciaCardiaca int
	PressaoSistolica  int
	PressaoDiastolica int
	Saturacao         int
	Flags             Flags
}

// Coerce converts a decoded JSON body. Numeric fields accept numbers or
// numeric strings; flags default to 0; free text is ORed into the flags.
func Coerce(body map[string]any) (Features, error) {
	var (
		f   Features
		err error
	)
	ints := []struct {
		name string
		dst  *int
	}{
		{"idade", &f.Idade},
		{"frequencia_cardiaca", &f.FrequenciaCardiaca},
		{"pressao_sistolica", &f.PressaoSistolica},
		{"pressao_diastolica", &f.PressaoDiastolica},
		{"saturacao", &f.Saturacao},
	}
	for _, field := range ints {
		if *field.dst, err = intField(body, field.name); err != nil {
			return Features{}, err
		}
	}
	if f.Temperatura, err = floatField(body, "temperatura"); err != nil {
		return Features{}, err
	}

	sexo, ok := body["sexo"]
	if !ok {
		return Features{}, missing("sexo")
	}
	f.Masculino = sexo == "Masculino"

	checked := Flags{}
	flagFields := []struct {
		name string
		dst  *bool
	}{
		{"tosse", &checked.Tosse},
		{"fadiga", &checked.Fadiga},
		{"sede_excessiva", &checked.SedeExcessiva},
		{"vomitos", &checked.Vomitos},
		{"falta_ar", &checked.FaltaAr},
	}
	for _, field := range flagFields {
		raw, ok := body[field.name]
		if !ok {
			continue
		}
		v, err := toInt(field.name, raw)
		if err != nil {
			return Features{}, err
		}
		*field.dst = v != 0
	}

	text, _ := body["sintomas_texto"].(string)
	f.Flags = checked.Or(ParseSymptoms(text))
	return f, nil
}

func missing(name string) error {
	return fmt.Errorf("campo obrigatório ausente: %s", name)
}

func intField(body map[string]any, name string) (int, error) {
	raw, ok := body[name]
	if !ok {
		return 0, missing(name)
	}
	return toInt(name, raw)
}

func toInt(name string, raw any) (int, error) {
	switch v := raw.(type) {
	case float64:
		return int(math.Trunc(v)), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("valor inválido para %s: %q", name, v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("valor inválido para %s: %v", name, raw)
}

func floatField(body map[string]any, name string) (float64, error) {
	raw, ok := body[name]
	if !ok {
		return 0, missing(name)
	}
	switch v := raw.(type) {
	case float64:
		return v, nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, fmt.Errorf("valor inválido para %s: %q", name, v)
		}
		return n, nil
	}
	return 0, fmt.Errorf("valor inválido para %s: %v", name, raw)
}
