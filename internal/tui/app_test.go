package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/petlist/internal/pets"
)

type fakeService struct {
	pets   []pets.Pet
	nextID int

	lists, creates, updates, deletes int
	added                            []pets.PetToAdd
	edited                           []pets.PetToEdit

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeService() *fakeService {
	return &fakeService{
		nextID: 4,
		pets: []pets.Pet{
			{ID: "1", Name: "Rex", Type: "Dog", Breed: "Lab", Age: 3},
			{ID: "2", Name: "Mimi", Type: "Cat", Breed: "Siamese", Age: 2},
			{ID: "3", Name: "Sparky", Type: "Dog", Breed: "Beagle", Age: 7},
		},
	}
}

func (f *fakeService) List(context.Context) ([]pets.Pet, error) {
	f.lists++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]pets.Pet(nil), f.pets...), nil
}

func (f *fakeService) Create(_ context.Context, in pets.PetToAdd) (pets.Pet, error) {
	f.creates++
	f.added = append(f.added, in)
	if f.createErr != nil {
		return pets.Pet{}, f.createErr
	}
	p := pets.Pet{ID: fmt.Sprint(f.nextID), Name: in.Name, Type: in.Type, Breed: in.Breed, Age: in.Age}
	f.nextID++
	f.pets = append(f.pets, p)
	return p, nil
}

func (f *fakeService) Update(_ context.Context, in pets.PetToEdit) (pets.Pet, error) {
	f.updates++
	f.edited = append(f.edited, in)
	if f.updateErr != nil {
		return pets.Pet{}, f.updateErr
	}
	for i, p := range f.pets {
		if p.ID == in.ID {
			f.pets[i] = p.Apply(in)
			return f.pets[i], nil
		}
	}
	return pets.Pet{}, errors.New("not found")
}

func (f *fakeService) Delete(_ context.Context, id string) (pets.Pet, error) {
	f.deletes++
	if f.deleteErr != nil {
		return pets.Pet{}, f.deleteErr
	}
	for i, p := range f.pets {
		if p.ID == id {
			f.pets = append(f.pets[:i], f.pets[i+1:]...)
			return p, nil
		}
	}
	return pets.Pet{}, errors.New("not found")
}

// drain runs cmd and feeds every resulting message back into the model
// until no further command is produced.
func drain(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	for cmd != nil {
		msg := cmd()
		_, isBatch := msg.(tea.BatchMsg)
		require.False(t, isBatch, "unexpected batch")
		_, cmd = a.Update(msg)
	}
}

func press(a *App, k tea.KeyType) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: k})
	return cmd
}

func typeRunes(a *App, s string) tea.Cmd {
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
	return cmd
}

func typeText(a *App, s string) {
	for _, r := range s {
		_ = typeRunes(a, string(r))
	}
}

func loadedApp(t *testing.T) (*App, *fakeService) {
	t.Helper()
	svc := newFakeService()
	a := New(context.Background(), svc)
	drain(t, a, a.loadPets())
	require.Equal(t, stateReady, a.state)
	require.Len(t, a.pets, 3)
	return a, svc
}

func TestInitialLoad(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	a := New(context.Background(), svc)
	require.Equal(t, "Loading...", a.View())

	drain(t, a, a.loadPets())
	require.Equal(t, 1, svc.lists)
	view := a.View()
	require.Contains(t, view, "Name: Rex | Type: Dog | Breed: Lab | Age: 3")
	require.Contains(t, view, "Name: Sparky | Type: Dog | Breed: Beagle | Age: 7")
	require.Contains(t, view, "Add Pet")
}

func TestSubmitWithEmptyFieldAlertsWithoutCall(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	a.setDraft(pets.Draft{Name: "Mimi", Type: "Cat", Age: "2"})

	cmd := press(a, tea.KeyEnter)
	require.Nil(t, cmd)
	require.Equal(t, alertMissingFields, a.alert)
	require.Zero(t, svc.creates)
	require.Contains(t, a.View(), "Please fill in all fields.")

	// keys other than enter/esc are swallowed by the alert
	_ = typeRunes(a, "x")
	require.Equal(t, "Mimi", a.inputs[focusName].Value())

	_ = press(a, tea.KeyEnter)
	require.Empty(t, a.alert)
	require.Equal(t, "Mimi", a.inputs[focusName].Value())
}

func TestSubmitWithBadAgeAlertsWithoutCall(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	a.setDraft(pets.Draft{Name: "Mimi", Type: "Cat", Breed: "Siamese", Age: "two"})

	require.Nil(t, press(a, tea.KeyEnter))
	require.Equal(t, "Age must be a whole number.", a.alert)
	require.Zero(t, svc.creates)
}

func TestCreateSendsParsedAgeAndRefetches(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	typeText(a, "Mimi")
	_ = press(a, tea.KeyTab)
	typeText(a, "Cat")
	_ = press(a, tea.KeyTab)
	typeText(a, "Siamese")
	_ = press(a, tea.KeyTab)
	typeText(a, "2")
	require.Equal(t, focusAge, a.focus)

	drain(t, a, press(a, tea.KeyEnter))

	require.Equal(t, []pets.PetToAdd{{Name: "Mimi", Type: "Cat", Breed: "Siamese", Age: 2}}, svc.added)
	require.Equal(t, 2, svc.lists)
	require.Len(t, a.pets, 4)
	require.Equal(t, "4", a.pets[3].ID)
	require.Equal(t, pets.Draft{}, a.draft())
	require.Equal(t, stateReady, a.state)
}

func TestEditOpensModalAndCloseKeepsDraft(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	before := append([]pets.Pet(nil), a.pets...)
	a.setFocus(focusList)

	_ = typeRunes(a, "e")
	require.True(t, a.modalOpen)
	require.Equal(t, pets.Draft{Name: "Rex", Type: "Dog", Breed: "Lab", Age: "3", EditingID: "1"}, a.draft())
	require.Equal(t, "Edit Pet", a.submitLabel())
	require.Contains(t, a.View(), "Edit Pet Details")

	_ = press(a, tea.KeyEsc)
	require.False(t, a.modalOpen)
	require.Equal(t, before, a.pets)
	require.Equal(t, "1", a.editingID)
	require.Equal(t, "Edit Pet", a.submitLabel())
	require.Zero(t, svc.updates)
	require.Equal(t, 1, svc.lists)
}

func TestModalSubmitUpdatesAndRefetches(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	a.setFocus(focusList)
	_ = press(a, tea.KeyDown)
	_ = typeRunes(a, "e")
	require.Equal(t, "2", a.editingID)

	a.inputs[focusAge].SetValue("4")
	drain(t, a, press(a, tea.KeyEnter))

	require.False(t, a.modalOpen)
	require.Equal(t, []pets.PetToEdit{{ID: "2", Name: "Mimi", Type: "Cat", Breed: "Siamese", Age: 4}}, svc.edited)
	require.Equal(t, 2, svc.lists)
	require.Equal(t, 4, a.pets[1].Age)
	require.Empty(t, a.editingID)
	require.Equal(t, "Add Pet", a.submitLabel())
}

func TestModalSubmitClosesEvenWhenInvalid(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	a.setFocus(focusList)
	_ = typeRunes(a, "e")
	a.inputs[focusName].SetValue("")

	require.Nil(t, press(a, tea.KeyEnter))
	require.False(t, a.modalOpen)
	require.Equal(t, alertMissingFields, a.alert)
	require.Equal(t, "1", a.editingID)
	require.Zero(t, svc.updates)
}

func TestClearDraftAbandonsEdit(t *testing.T) {
	t.Parallel()

	a, _ := loadedApp(t)
	a.setFocus(focusList)
	_ = typeRunes(a, "e")
	_ = press(a, tea.KeyEsc)
	require.Equal(t, "Edit Pet", a.submitLabel())

	_ = press(a, tea.KeyCtrlN)
	require.Equal(t, pets.Draft{}, a.draft())
	require.Equal(t, "Add Pet", a.submitLabel())
}

func TestFilterNarrowsDisplayedList(t *testing.T) {
	t.Parallel()

	a, _ := loadedApp(t)
	a.filter.SetValue("re")
	require.Equal(t, []pets.Pet{a.pets[0]}, a.visible())
	view := a.View()
	require.Contains(t, view, "Name: Rex")
	require.NotContains(t, view, "Name: Mimi")

	a.filter.SetValue("z")
	require.Empty(t, a.visible())
	require.Len(t, a.pets, 3)
	require.Contains(t, a.View(), "Did you mean Rex?")

	a.filter.SetValue("")
	require.Len(t, a.visible(), 3)
}

func TestFilterTypingResetsCursor(t *testing.T) {
	t.Parallel()

	a, _ := loadedApp(t)
	a.setFocus(focusList)
	_ = press(a, tea.KeyDown)
	_ = press(a, tea.KeyDown)
	require.Equal(t, 2, a.cursor)

	a.setFocus(focusFilter)
	typeText(a, "mi")
	require.Equal(t, "mi", a.filter.Value())
	require.Zero(t, a.cursor)
	require.Len(t, a.visible(), 1)
}

func TestDeleteSuccessRefetches(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	a.setFocus(focusList)
	drain(t, a, typeRunes(a, "d"))

	require.Equal(t, 1, svc.deletes)
	require.Equal(t, 2, svc.lists)
	require.Len(t, a.pets, 2)
	for _, p := range a.pets {
		require.NotEqual(t, "1", p.ID)
	}
}

func TestDeleteFailureDoesNotRefetch(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	svc.deleteErr = errors.New("boom")
	a.setFocus(focusList)
	drain(t, a, typeRunes(a, "d"))

	require.Equal(t, 1, svc.deletes)
	require.Equal(t, 1, svc.lists)
	require.Len(t, a.pets, 3)
	require.Equal(t, stateReady, a.state)
}

func TestDeleteWithoutIDIsSkipped(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	require.Nil(t, a.deletePet(""))
	require.Zero(t, svc.deletes)
}

func TestListErrorThenRetry(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	svc.listErr = errors.New("connection refused")
	a := New(context.Background(), svc)
	drain(t, a, a.loadPets())

	require.Equal(t, stateError, a.state)
	require.Contains(t, a.View(), "Error: connection refused")

	// the error screen ignores form keys
	require.Nil(t, press(a, tea.KeyEnter))

	svc.listErr = nil
	drain(t, a, press(a, tea.KeyCtrlR))
	require.Equal(t, stateReady, a.state)
	require.Equal(t, 2, svc.lists)
	require.Contains(t, a.View(), "Name: Rex")
}

func TestQuitOnlyOutsideInputs(t *testing.T) {
	t.Parallel()

	a, _ := loadedApp(t)
	_ = typeRunes(a, "q")
	require.Equal(t, "q", a.inputs[focusName].Value())

	a.setFocus(focusList)
	cmd := typeRunes(a, "q")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestFocusCyclesThroughAreas(t *testing.T) {
	t.Parallel()

	a, _ := loadedApp(t)
	for _, want := range []focusArea{focusType, focusBreed, focusAge, focusFilter, focusList} {
		_ = press(a, tea.KeyTab)
		require.Equal(t, want, a.focus)
	}
	_ = press(a, tea.KeyTab)
	require.Equal(t, focusName, a.focus)

	_ = press(a, tea.KeyShiftTab)
	require.Equal(t, focusList, a.focus)
}

func TestEditKeepsFullValues(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("N", 80)
	svc := newFakeService()
	svc.pets = []pets.Pet{{ID: "1", Name: long, Type: "Dog", Breed: "Lab", Age: 12345}}
	a := New(context.Background(), svc)
	drain(t, a, a.loadPets())

	a.setFocus(focusList)
	_ = typeRunes(a, "e")
	d := a.draft()
	require.Equal(t, long, d.Name)
	require.Equal(t, "12345", d.Age)

	drain(t, a, press(a, tea.KeyEnter))
	require.Equal(t, []pets.PetToEdit{{ID: "1", Name: long, Type: "Dog", Breed: "Lab", Age: 12345}}, svc.edited)
}

func TestAgeInputAcceptsDigitsOnly(t *testing.T) {
	t.Parallel()

	a, _ := loadedApp(t)
	a.setFocus(focusAge)
	typeText(a, "1a2")
	_ = press(a, tea.KeySpace)
	require.Equal(t, "12", a.inputs[focusAge].Value())

	// other fields take anything
	a.setFocus(focusName)
	typeText(a, "a1")
	require.Equal(t, "a1", a.inputs[focusName].Value())
}

func TestModalAgeInputAcceptsDigitsOnly(t *testing.T) {
	t.Parallel()

	a, _ := loadedApp(t)
	a.setFocus(focusList)
	_ = typeRunes(a, "e")
	for range fieldCount - 1 {
		_ = press(a, tea.KeyTab)
	}
	require.Equal(t, int(focusAge), a.modalFocus)

	typeText(a, "x4")
	got := a.inputs[focusAge].Value()
	require.NotContains(t, got, "x")
	require.Len(t, got, 2)
	require.Contains(t, got, "4")
}

func TestCreateFailureIsNotSurfaced(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	svc.createErr = errors.New("boom")
	a.setDraft(pets.Draft{Name: "Mimi", Type: "Cat", Breed: "Siamese", Age: "2"})

	drain(t, a, press(a, tea.KeyEnter))

	require.Equal(t, 1, svc.creates)
	require.Equal(t, 1, svc.lists)
	require.Empty(t, a.alert)
	require.Equal(t, pets.Draft{}, a.draft())
	require.Len(t, a.pets, 3)
	require.Equal(t, stateReady, a.state)
}

func TestUpdateFailureIsNotSurfaced(t *testing.T) {
	t.Parallel()

	a, svc := loadedApp(t)
	svc.updateErr = errors.New("boom")
	a.setFocus(focusList)
	_ = typeRunes(a, "e")

	drain(t, a, press(a, tea.KeyEnter))

	require.Equal(t, 1, svc.updates)
	require.Equal(t, 1, svc.lists)
	require.False(t, a.modalOpen)
	require.Empty(t, a.alert)
	require.Equal(t, pets.Draft{}, a.draft())
	require.Equal(t, "Add Pet", a.submitLabel())
}

func TestKeysIgnoredUntilFirstLoad(t *testing.T) {
	t.Parallel()

	svc := newFakeService()
	a := New(context.Background(), svc)

	typeText(a, "Rex")
	require.Nil(t, press(a, tea.KeyEnter))
	require.Empty(t, a.alert)
	require.Equal(t, pets.Draft{}, a.draft())
	require.Zero(t, svc.creates)

	cmd := typeRunes(a, "q")
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}
