package devserver

import (
	"context"

	"github.com/jask/petlist/internal/pets"
)

var samplePets = []pets.PetToAdd{
	{Name: "Rex", Type: "Dog", Breed: "Labrador", Age: 3},
	{Name: "Mimi", Type: "Cat", Breed: "Siamese", Age: 2},
	{Name: "Sparky", Type: "Dog", Breed: "Beagle", Age: 7},
	{Name: "Nibbles", Type: "Rabbit", Breed: "Holland Lop", Age: 1},
	{Name: "Kiwi", Type: "Bird", Breed: "Budgerigar", Age: 4},
}

// Seed inserts sample pets when the store is empty. It returns how many
// were added.
func Seed(ctx context.Context, store Store) (int, error) {
	existing, err := store.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}
	for i, p := range samplePets {
		if _, err := store.Create(ctx, p); err != nil {
			return i, err
		}
	}
	return len(samplePets), nil
}
