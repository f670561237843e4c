package pets

import (
	"fmt"
	"strconv"
)

// Pet is the only record the service manages. ID is assigned by the server.
type Pet struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type"`
	Breed string `json:"breed"`
	Age   int    `json:"age"`
}

// PetToAdd is the create input.
type PetToAdd struct {
	Name  string `json:"name" mapstructure:"name"`
	Type  string `json:"type" mapstructure:"type"`
	Breed string `json:"breed" mapstructure:"breed"`
	Age   int    `json:"age" mapstructure:"age"`
}

// PetToEdit is the update input.
type PetToEdit struct {
	ID    string `json:"id" mapstructure:"id"`
	Name  string `json:"name" mapstructure:"name"`
	Type  string `json:"type" mapstructure:"type"`
	Breed string `json:"breed" mapstructure:"breed"`
	Age   int    `json:"age" mapstructure:"age"`
}

// Summary is the single line shown for a record in lists.
func (p Pet) Summary() string {
	return fmt.Sprintf("Name: %s | Type: %s | Breed: %s | Age: %d", p.Name, p.Type, p.Breed, p.Age)
}

// Apply returns p with the editable fields replaced from in.
func (p Pet) Apply(in PetToEdit) Pet {
	p.Name = in.Name
	p.Type = in.Type
	p.Breed = in.Breed
	p.Age = in.Age
	return p
}

// AgeText renders the age the way the form expects it.
func (p Pet) AgeText() string {
	return strconv.Itoa(p.Age)
}
