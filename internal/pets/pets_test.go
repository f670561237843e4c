package pets

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func samplePets() []Pet {
	return []Pet{
		{ID: "1", Name: "Rex", Type: "Dog", Breed: "Lab", Age: 3},
		{ID: "2", Name: "Mimi", Type: "Cat", Breed: "Siamese", Age: 2},
		{ID: "3", Name: "Sparky", Type: "Dog", Breed: "Beagle", Age: 7},
	}
}

func TestFilterSubstringIgnoresCase(t *testing.T) {
	t.Parallel()

	single := []Pet{{ID: "1", Name: "Rex", Type: "Dog", Breed: "Lab", Age: 3}}
	got := Filter(single, "re")
	require.Len(t, got, 1)
	require.Equal(t, "Rex", got[0].Name)

	require.Empty(t, Filter(single, "z"))
	require.Len(t, Filter(single, "REX"), 1)
}

func TestFilterEmptyQueryReturnsAll(t *testing.T) {
	t.Parallel()

	all := samplePets()
	require.Equal(t, all, Filter(all, ""))
}

func TestFilterMatchesSubset(t *testing.T) {
	t.Parallel()

	all := samplePets()
	cases := map[string][]string{
		"r":   {"1", "3"},
		"M":   {"2"},
		"ARK": {"3"},
		"i":   {"2"},
		"xyz": {},
	}
	for q, wantIDs := range cases {
		got := Filter(all, q)
		ids := make([]string, 0, len(got))
		for _, p := range got {
			ids = append(ids, p.ID)
		}
		require.ElementsMatch(t, wantIDs, ids, "query %q", q)
	}
}

func TestClosest(t *testing.T) {
	t.Parallel()

	name, ok := Closest(samplePets(), "mimo")
	require.True(t, ok)
	require.Equal(t, "Mimi", name)

	_, ok = Closest(nil, "rex")
	require.False(t, ok)
	_, ok = Closest(samplePets(), "")
	require.False(t, ok)
}

func TestDraftValidateCreate(t *testing.T) {
	t.Parallel()

	sub, err := Draft{Name: "Mimi", Type: "Cat", Breed: "Siamese", Age: "2"}.Validate()
	require.NoError(t, err)
	require.Nil(t, sub.Edit)
	require.Equal(t, &PetToAdd{Name: "Mimi", Type: "Cat", Breed: "Siamese", Age: 2}, sub.Add)
}

func TestDraftValidateEdit(t *testing.T) {
	t.Parallel()

	d := DraftFrom(Pet{ID: "7", Name: "Rex", Type: "Dog", Breed: "Lab", Age: 3})
	require.True(t, d.Editing())
	require.Equal(t, "3", d.Age)

	d.Age = "4"
	sub, err := d.Validate()
	require.NoError(t, err)
	require.Nil(t, sub.Add)
	require.Equal(t, &PetToEdit{ID: "7", Name: "Rex", Type: "Dog", Breed: "Lab", Age: 4}, sub.Edit)
}

func TestDraftValidateMissingField(t *testing.T) {
	t.Parallel()

	cases := []Draft{
		{Type: "Cat", Breed: "Siamese", Age: "2"},
		{Name: "Mimi", Breed: "Siamese", Age: "2"},
		{Name: "Mimi", Type: "Cat", Age: "2"},
		{Name: "Mimi", Type: "Cat", Breed: "Siamese"},
	}
	for _, d := range cases {
		_, err := d.Validate()
		require.ErrorIs(t, err, ErrMissingField)
	}
}

func TestParseAge(t *testing.T) {
	t.Parallel()

	n, err := ParseAge(" 12 ")
	require.NoError(t, err)
	require.Equal(t, 12, n)

	for _, bad := range []string{"abc", "3 years", "-1", "2.5"} {
		_, err := ParseAge(bad)
		require.True(t, errors.Is(err, ErrInvalidAge), "input %q", bad)
	}
	_, err = ParseAge("   ")
	require.ErrorIs(t, err, ErrMissingField)
}

func TestSummaryAndApply(t *testing.T) {
	t.Parallel()

	p := Pet{ID: "1", Name: "Rex", Type: "Dog", Breed: "Lab", Age: 3}
	require.Equal(t, "Name: Rex | Type: Dog | Breed: Lab | Age: 3", p.Summary())

	q := p.Apply(PetToEdit{ID: "ignored", Name: "Max", Type: "Dog", Breed: "Pug", Age: 5})
	require.Equal(t, "1", q.ID)
	require.Equal(t, "Max", q.Name)
	require.Equal(t, 5, q.Age)
}
