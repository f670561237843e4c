package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jask/petlist/internal/graphql"
	"github.com/jask/petlist/internal/pets"
)

// ErrIDRequired is returned before any request when a mutation lacks an id.
var ErrIDRequired = errors.New("pet id is required")

// Service is the set of operations the screen and CLI use.
type Service interface {
	List(ctx context.Context) ([]pets.Pet, error)
	Create(ctx context.Context, in pets.PetToAdd) (pets.Pet, error)
	Update(ctx context.Context, in pets.PetToEdit) (pets.Pet, error)
	Delete(ctx context.Context, id string) (pets.Pet, error)
}

// Doer sends one GraphQL request. *graphql.Client implements it.
type Doer interface {
	Do(ctx context.Context, req graphql.Request, out any) error
}

// Client implements Service over GraphQL.
type Client struct {
	gql Doer
}

func NewClient(gql Doer) *Client {
	return &Client{gql: gql}
}

// GetPetsResponse is the data payload of GetPets.
type GetPetsResponse struct {
	Pets []pets.Pet `json:"pets"`
}

func (c *Client) List(ctx context.Context) ([]pets.Pet, error) {
	var out GetPetsResponse
	if err := c.gql.Do(ctx, graphql.Request{Query: GetPetsQuery, OperationName: OpGetPets}, &out); err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return out.Pets, nil
}

func (c *Client) Create(ctx context.Context, in pets.PetToAdd) (pets.Pet, error) {
	var out struct {
		AddPet *pets.Pet `json:"addPet"`
	}
	req := graphql.Request{
		Query:         AddPetMutation,
		OperationName: OpAddPet,
		Variables:     map[string]any{"petToAdd": in},
	}
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return pets.Pet{}, fmt.Errorf("add pet: %w", err)
	}
	return deref(out.AddPet, "addPet")
}

func (c *Client) Update(ctx context.Context, in pets.PetToEdit) (pets.Pet, error) {
	if strings.TrimSpace(in.ID) == "" {
		return pets.Pet{}, ErrIDRequired
	}
	var out struct {
		EditPet *pets.Pet `json:"editPet"`
	}
	req := graphql.Request{
		Query:         EditPetMutation,
		OperationName: OpEditPet,
		Variables:     map[string]any{"petToEdit": in},
	}
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return pets.Pet{}, fmt.Errorf("edit pet %s: %w", in.ID, err)
	}
	return deref(out.EditPet, "editPet")
}

func (c *Client) Delete(ctx context.Context, id string) (pets.Pet, error) {
	if strings.TrimSpace(id) == "" {
		return pets.Pet{}, ErrIDRequired
	}
	var out struct {
		DeletePet *pets.Pet `json:"deletePet"`
	}
	req := graphql.Request{
		Query:         DeletePetMutation,
		OperationName: OpDeletePet,
		Variables:     map[string]any{"id": id},
	}
	if err := c.gql.Do(ctx, req, &out); err != nil {
		return pets.Pet{}, fmt.Errorf("delete pet %s: %w", id, err)
	}
	return deref(out.DeletePet, "deletePet")
}

func deref(p *pets.Pet, field string) (pets.Pet, error) {
	if p == nil {
		return pets.Pet{}, fmt.Errorf("%s: empty result", field)
	}
	return *p, nil
}
