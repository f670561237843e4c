package devserver

import (
	"context"
	"errors"

	"github.com/jask/petlist/internal/pets"
)

// ErrNotFound is returned when an id matches no pet.
var ErrNotFound = errors.New("pet not found")

// Store persists pets for the dev server. Implementations assign ids.
type Store interface {
	List(ctx context.Context) ([]pets.Pet, error)
	Create(ctx context.Context, in pets.PetToAdd) (pets.Pet, error)
	Update(ctx context.Context, in pets.PetToEdit) (pets.Pet, error)
	Delete(ctx context.Context, id string) (pets.Pet, error)
}
