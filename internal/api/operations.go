package api

// Operation documents sent to the pets service. Every record-shaped
// selection uses the same field set.
const (
	petFields = `
      id
      name
      type
      breed
      age`

	GetPetsQuery = `query GetPets {
  pets {` + petFields + `
  }
}`

	AddPetMutation = `mutation AddPet($petToAdd: PetToAdd!) {
  addPet(petToAdd: $petToAdd) {` + petFields + `
  }
}`

	EditPetMutation = `mutation EditPet($petToEdit: PetToEdit!) {
  editPet(petToEdit: $petToEdit) {` + petFields + `
  }
}`

	DeletePetMutation = `mutation DeletePet($id: ID!) {
  deletePet(id: $id) {` + petFields + `
  }
}`
)

// Operation names, also used by the dev server for dispatch.
const (
	OpGetPets   = "GetPets"
	OpAddPet    = "AddPet"
	OpEditPet   = "EditPet"
	OpDeletePet = "DeletePet"
)
