package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	gologging "github.com/op/go-logging"

	"github.com/jask/petlist/internal/api"
	"github.com/jask/petlist/internal/logging"
	"github.com/jask/petlist/internal/pets"
)

// App is the list-and-form screen.
type App struct {
	ctx context.Context
	svc api.Service
	log *gologging.Logger

	state   screenState
	loaded  bool
	loadErr error
	pets    []pets.Pet

	// draft: the four inputs plus the record being edited, shared by the
	// inline form and the edit modal.
	inputs    [fieldCount]textinput.Model
	editingID string

	filter textinput.Model
	focus  focusArea
	cursor int
	offset int

	modalOpen  bool
	modalFocus int
	alert      string

	width  int
	height int
}

type screenState string

const (
	stateLoading screenState = "loading"
	stateReady   screenState = "ready"
	stateError   screenState = "error"
)

type focusArea int

const (
	focusName focusArea = iota
	focusType
	focusBreed
	focusAge
	focusFilter
	focusList
	focusCount
)

const fieldCount = 4

var fieldLabels = [fieldCount]string{"Name", "Type", "Breed", "Age"}

const alertMissingFields = "Please fill in all fields."

var errNotDigits = errors.New("digits only")

func digitsOnly(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return errNotDigits
		}
	}
	return nil
}

// acceptsKey keeps anything but digits out of the age input while typing.
// Values set programmatically are not filtered.
func acceptsKey(field int, m tea.KeyMsg) bool {
	if field != int(focusAge) {
		return true
	}
	switch m.Type {
	case tea.KeySpace:
		return false
	case tea.KeyRunes:
		return digitsOnly(string(m.Runes)) == nil
	}
	return true
}

// New builds the screen around an already constructed service.
func New(ctx context.Context, svc api.Service) *App {
	a := &App{
		ctx:   ctx,
		svc:   svc,
		log:   logging.For("tui"),
		state: stateLoading,
	}
	for i := range a.inputs {
		in := textinput.New()
		in.Placeholder = fieldLabels[i]
		in.Prompt = ""
		in.Width = 32
		a.inputs[i] = in
	}
	a.inputs[focusAge].Placeholder = "Age (number)"
	a.inputs[focusAge].Validate = digitsOnly

	a.filter = textinput.New()
	a.filter.Placeholder = "Search Pet Name..."
	a.filter.Prompt = ""
	a.filter.Width = 32

	a.inputs[focusName].Focus()
	return a
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.loadPets())
}

// messages
type petsLoadedMsg []pets.Pet

type petsErrMsg struct{ error }

type mutationKind string

const (
	mutationCreate mutationKind = "create"
	mutationUpdate mutationKind = "update"
	mutationDelete mutationKind = "delete"
)

type mutationDoneMsg struct {
	kind mutationKind
	pet  pets.Pet
	err  error
}

// commands

func (a *App) loadPets() tea.Cmd {
	a.state = stateLoading
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		list, err := svc.List(ctx)
		if err != nil {
			return petsErrMsg{err}
		}
		return petsLoadedMsg(list)
	}
}

func (a *App) createCmd(in pets.PetToAdd) tea.Cmd {
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		p, err := svc.Create(ctx, in)
		return mutationDoneMsg{kind: mutationCreate, pet: p, err: err}
	}
}

func (a *App) updateCmd(in pets.PetToEdit) tea.Cmd {
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		p, err := svc.Update(ctx, in)
		return mutationDoneMsg{kind: mutationUpdate, pet: p, err: err}
	}
}

func (a *App) deleteCmd(id string) tea.Cmd {
	ctx, svc := a.ctx, a.svc
	return func() tea.Msg {
		p, err := svc.Delete(ctx, id)
		return mutationDoneMsg{kind: mutationDelete, pet: p, err: err}
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		return a, nil
	case tea.KeyMsg:
		return a.handleKey(m)
	case petsLoadedMsg:
		a.pets = []pets.Pet(m)
		a.loaded = true
		a.loadErr = nil
		a.state = stateReady
		a.clampCursor()
		return a, nil
	case petsErrMsg:
		a.loadErr = m.error
		a.state = stateError
		a.log.Errorf("list pets: %v", m.error)
		return a, nil
	case mutationDoneMsg:
		return a, a.mutationDone(m)
	}
	return a, a.updateFocused(msg)
}

// mutationDone refetches after a successful write. Failures are logged only.
func (a *App) mutationDone(m mutationDoneMsg) tea.Cmd {
	if m.err != nil {
		if m.kind == mutationDelete {
			a.log.Errorf("Error deleting pet: %v", m.err)
		} else {
			a.log.Warningf("%s pet: %v", m.kind, m.err)
		}
		return nil
	}
	switch m.kind {
	case mutationDelete:
		a.log.Infof("Pet deleted successfully: %s", m.pet.ID)
	default:
		a.log.Debugf("%s pet %s ok", m.kind, m.pet.ID)
	}
	return a.loadPets()
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(m, keys.ForceQuit) {
		return a, tea.Quit
	}
	if a.alert != "" {
		if key.Matches(m, keys.Submit, keys.Close) {
			a.alert = ""
		}
		return a, nil
	}
	if a.state == stateLoading && !a.loaded {
		if key.Matches(m, keys.Quit) {
			return a, tea.Quit
		}
		return a, nil
	}
	if a.state == stateError {
		switch {
		case key.Matches(m, keys.Refetch):
			return a, a.loadPets()
		case key.Matches(m, keys.Quit):
			return a, tea.Quit
		}
		return a, nil
	}
	if a.modalOpen {
		return a, a.handleModalKey(m)
	}

	switch {
	case key.Matches(m, keys.ClearDraft):
		a.clearDraft()
		return a, nil
	case key.Matches(m, keys.Refetch):
		return a, a.loadPets()
	}

	if a.focus == focusList {
		return a, a.handleListKey(m)
	}

	switch {
	case key.Matches(m, keys.Next):
		a.setFocus(a.focus + 1)
		return a, nil
	case key.Matches(m, keys.Prev):
		a.setFocus(a.focus - 1)
		return a, nil
	case key.Matches(m, keys.Submit):
		if a.focus == focusFilter {
			a.setFocus(focusList)
			return a, nil
		}
		return a, a.submit()
	}

	if a.focus == focusFilter {
		before := a.filter.Value()
		var cmd tea.Cmd
		a.filter, cmd = a.filter.Update(m)
		if a.filter.Value() != before {
			a.cursor, a.offset = 0, 0
		}
		return a, cmd
	}
	if !acceptsKey(int(a.focus), m) {
		return a, nil
	}
	return a, a.updateFocused(m)
}

func (a *App) handleListKey(m tea.KeyMsg) tea.Cmd {
	visible := a.visible()
	switch {
	case key.Matches(m, keys.Quit):
		return tea.Quit
	case key.Matches(m, keys.Up):
		if a.cursor > 0 {
			a.cursor--
		} else {
			a.setFocus(focusFilter)
		}
	case key.Matches(m, keys.Down):
		if a.cursor < len(visible)-1 {
			a.cursor++
		}
	case m.String() == "tab":
		a.setFocus(focusName)
	case m.String() == "shift+tab":
		a.setFocus(focusFilter)
	case key.Matches(m, keys.Edit):
		if len(visible) > 0 {
			a.openEdit(visible[a.cursor])
		}
	case key.Matches(m, keys.Delete):
		if len(visible) > 0 {
			return a.deletePet(visible[a.cursor].ID)
		}
	}
	return nil
}

func (a *App) handleModalKey(m tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(m, keys.Close):
		a.closeModal()
		return nil
	case key.Matches(m, keys.Submit):
		cmd := a.submit()
		a.closeModal()
		return cmd
	case key.Matches(m, keys.Next):
		a.setModalFocus(a.modalFocus + 1)
		return nil
	case key.Matches(m, keys.Prev):
		a.setModalFocus(a.modalFocus - 1)
		return nil
	}
	if !acceptsKey(a.modalFocus, m) {
		return nil
	}
	var cmd tea.Cmd
	a.inputs[a.modalFocus], cmd = a.inputs[a.modalFocus].Update(m)
	return cmd
}

// updateFocused forwards non-key messages (e.g. cursor blink) to the
// focused input.
func (a *App) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch {
	case a.modalOpen:
		a.inputs[a.modalFocus], cmd = a.inputs[a.modalFocus].Update(msg)
	case a.focus < fieldCount:
		a.inputs[a.focus], cmd = a.inputs[a.focus].Update(msg)
	case a.focus == focusFilter:
		a.filter, cmd = a.filter.Update(msg)
	}
	return cmd
}

// submit validates the draft and routes it to create or update. The draft
// is cleared once the request is issued, whatever its outcome.
func (a *App) submit() tea.Cmd {
	sub, err := a.draft().Validate()
	if err != nil {
		a.alert = alertText(err)
		return nil
	}
	a.clearDraft()
	if sub.Edit != nil {
		return a.updateCmd(*sub.Edit)
	}
	return a.createCmd(*sub.Add)
}

func (a *App) deletePet(id string) tea.Cmd {
	if id == "" {
		a.log.Error("pet id is required but not provided")
		return nil
	}
	return a.deleteCmd(id)
}

func alertText(err error) string {
	switch {
	case errors.Is(err, pets.ErrMissingField):
		return alertMissingFields
	case errors.Is(err, pets.ErrInvalidAge):
		return "Age must be a whole number."
	}
	return err.Error()
}

func (a *App) draft() pets.Draft {
	return pets.Draft{
		Name:      a.inputs[focusName].Value(),
		Type:      a.inputs[focusType].Value(),
		Breed:     a.inputs[focusBreed].Value(),
		Age:       a.inputs[focusAge].Value(),
		EditingID: a.editingID,
	}
}

func (a *App) setDraft(d pets.Draft) {
	a.inputs[focusName].SetValue(d.Name)
	a.inputs[focusType].SetValue(d.Type)
	a.inputs[focusBreed].SetValue(d.Breed)
	a.inputs[focusAge].SetValue(d.Age)
	a.editingID = d.EditingID
}

func (a *App) clearDraft() {
	a.setDraft(pets.Draft{})
}

func (a *App) openEdit(p pets.Pet) {
	a.setDraft(pets.DraftFrom(p))
	a.modalOpen = true
	a.blurAll()
	a.setModalFocus(0)
}

func (a *App) closeModal() {
	a.modalOpen = false
	a.setFocus(a.focus)
}

func (a *App) setModalFocus(i int) {
	i = (i + fieldCount) % fieldCount
	a.inputs[a.modalFocus].Blur()
	a.modalFocus = i
	a.inputs[i].Focus()
}

func (a *App) setFocus(f focusArea) {
	f = (f + focusCount) % focusCount
	a.blurAll()
	a.focus = f
	switch {
	case f < fieldCount:
		a.inputs[f].Focus()
	case f == focusFilter:
		a.filter.Focus()
	}
}

func (a *App) blurAll() {
	for i := range a.inputs {
		a.inputs[i].Blur()
	}
	a.filter.Blur()
}

// visible is the filtered view of the last fetched collection.
func (a *App) visible() []pets.Pet {
	return pets.Filter(a.pets, a.filter.Value())
}

func (a *App) clampCursor() {
	n := len(a.visible())
	if a.cursor >= n {
		a.cursor = n - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}
