package pets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMissingField = errors.New("please fill in all fields")
	ErrInvalidAge   = errors.New("age must be a whole number of years")
)

// Draft holds the form fields of an in-progress create or edit.
// EditingID is empty for a new record.
type Draft struct {
	Name      string
	Type      string
	Breed     string
	Age       string
	EditingID string
}

// DraftFrom copies a record into a draft that edits it.
func DraftFrom(p Pet) Draft {
	return Draft{
		Name:      p.Name,
		Type:      p.Type,
		Breed:     p.Breed,
		Age:       p.AgeText(),
		EditingID: p.ID,
	}
}

// Editing reports whether the draft targets an existing record.
func (d Draft) Editing() bool {
	return d.EditingID != ""
}

// Complete reports whether all four fields hold text.
func (d Draft) Complete() bool {
	return d.Name != "" && d.Type != "" && d.Breed != "" && d.Age != ""
}

// Submission is a validated draft, routed to either create or update.
type Submission struct {
	Add  *PetToAdd
	Edit *PetToEdit
}

// Validate checks the draft and converts it to the wire input.
func (d Draft) Validate() (Submission, error) {
	if !d.Complete() {
		return Submission{}, ErrMissingField
	}
	age, err := ParseAge(d.Age)
	if err != nil {
		return Submission{}, err
	}
	if d.Editing() {
		return Submission{Edit: &PetToEdit{
			ID:    d.EditingID,
			Name:  d.Name,
			Type:  d.Type,
			Breed: d.Breed,
			Age:   age,
		}}, nil
	}
	return Submission{Add: &PetToAdd{
		Name:  d.Name,
		Type:  d.Type,
		Breed: d.Breed,
		Age:   age,
	}}, nil
}

// ParseAge parses the age field. Surrounding space is ignored; anything
// other than a non-negative integer is rejected.
func ParseAge(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrMissingField
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAge, s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAge, n)
	}
	return n, nil
}
