package devserver

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/mitchellh/mapstructure"

	"github.com/jask/petlist/internal/api"
	"github.com/jask/petlist/internal/pets"
)

// rootFields maps operation names to the field their data is keyed by.
var rootFields = map[string]string{
	api.OpGetPets:   "pets",
	api.OpAddPet:    "addPet",
	api.OpEditPet:   "editPet",
	api.OpDeletePet: "deletePet",
}

// resolveField picks the root field a request targets: by operation name
// when it is one we know, otherwise the first selection in the document.
func resolveField(operationName, query string) (string, error) {
	if f, ok := rootFields[operationName]; ok {
		return f, nil
	}
	f := firstSelection(query)
	for _, known := range rootFields {
		if f == known {
			return f, nil
		}
	}
	if f == "" {
		return "", errors.New("no operation found in document")
	}
	return "", fmt.Errorf("unknown field %q", f)
}

func firstSelection(query string) string {
	i := strings.IndexByte(query, '{')
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeftFunc(query[i+1:], unicode.IsSpace)
	end := strings.IndexFunc(rest, func(r rune) bool {
		return !(r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r))
	})
	if end < 0 {
		return rest
	}
	return rest[:end]
}

type inputError struct{ msg string }

func (e inputError) Error() string { return e.msg }

func execute(ctx context.Context, store Store, field string, vars map[string]any) (any, error) {
	switch field {
	case "pets":
		return store.List(ctx)
	case "addPet":
		var in pets.PetToAdd
		if err := decodeInput(vars, "petToAdd", []string{"name", "type", "breed", "age"}, &in); err != nil {
			return nil, err
		}
		if err := checkFields(in.Name, in.Type, in.Breed, in.Age); err != nil {
			return nil, err
		}
		return store.Create(ctx, in)
	case "editPet":
		var in pets.PetToEdit
		if err := decodeInput(vars, "petToEdit", []string{"id", "name", "type", "breed", "age"}, &in); err != nil {
			return nil, err
		}
		if strings.TrimSpace(in.ID) == "" {
			return nil, inputError{"petToEdit.id must not be empty"}
		}
		if err := checkFields(in.Name, in.Type, in.Breed, in.Age); err != nil {
			return nil, err
		}
		return store.Update(ctx, in)
	case "deletePet":
		id, _ := vars["id"].(string)
		if strings.TrimSpace(id) == "" {
			return nil, inputError{"variable $id of type ID! was not provided"}
		}
		return store.Delete(ctx, id)
	}
	return nil, fmt.Errorf("unknown field %q", field)
}

func decodeInput(vars map[string]any, name string, required []string, out any) error {
	raw, ok := vars[name].(map[string]any)
	if !ok {
		return inputError{fmt.Sprintf("variable $%s was not provided", name)}
	}
	for _, k := range required {
		if _, ok := raw[k]; !ok {
			return inputError{fmt.Sprintf("field %s.%s is required", name, k)}
		}
	}
	if age, ok := raw["age"].(float64); ok {
		if age != math.Trunc(age) || math.IsNaN(age) {
			return inputError{fmt.Sprintf("field %s.age must be an Int", name)}
		}
		if age > math.MaxInt32 || age < math.MinInt32 {
			return inputError{fmt.Sprintf("field %s.age is out of Int range", name)}
		}
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := dec.Decode(raw); err != nil {
		return inputError{fmt.Sprintf("variable $%s: %v", name, err)}
	}
	return nil
}

func checkFields(name, typ, breed string, age int) error {
	if strings.TrimSpace(name) == "" {
		return inputError{"name must not be empty"}
	}
	if typ == "" || breed == "" {
		return inputError{"type and breed are required"}
	}
	if age < 0 {
		return inputError{"age must not be negative"}
	}
	return nil
}
