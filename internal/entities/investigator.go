package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"

	"github.com/KirkDiggler/coc-api/internal/errors"
)

// EntityTypeInvestigator is the rpg-toolkit entity type of an Investigator
const EntityTypeInvestigator = "investigator"

// Era is the setting an investigator is played in
type Era int

// Eras
const (
	EraNineteenTwenties Era = iota + 1
	EraModern
	EraPulp
)

func (e Era) String() string {
	switch e {
	case EraNineteenTwenties:
		return "1920s"
	case EraModern:
		return "modern"
	case EraPulp:
		return "pulp"
	default:
		return "unspecified"
	}
}

// ParseEra maps "1920s", "modern" and "pulp" to an Era
func ParseEra(s string) (Era, error) {
	for _, e := range []Era{EraNineteenTwenties, EraModern, EraPulp} {
		if e.String() == s {
			return e, nil
		}
	}
	return 0, errors.InvalidArgumentf("unknown era %q", s)
}

// Gender of an investigator
type Gender int

// Genders
const (
	GenderMale Gender = iota + 1
	GenderFemale
	GenderX
)

type pronouns struct {
	person     string
	possessive string
	object     string
	personal   string
}

var genderPronouns = map[Gender]pronouns{
	GenderMale:   {person: "man", possessive: "his", object: "him", personal: "he"},
	GenderFemale: {person: "woman", possessive: "her", object: "her", personal: "she"},
	GenderX:      {person: "X", possessive: "theirs", object: "them", personal: "they"},
}

// ParseGender maps "male", "female" and "x" to a Gender
func ParseGender(s string) (Gender, error) {
	switch s {
	case "male", "m":
		return GenderMale, nil
	case "female", "f":
		return GenderFemale, nil
	case "x":
		return GenderX, nil
	default:
		return 0, errors.InvalidArgumentf("unknown gender %q", s)
	}
}

// Valid reports whether g is a known gender
func (g Gender) Valid() bool {
	_, ok := genderPronouns[g]
	return ok
}

// Person returns "man", "woman" or "X"
func (g Gender) Person() string { return genderPronouns[g].person }

// PossessivePronoun returns "his", "her" or "theirs"
func (g Gender) PossessivePronoun() string { return genderPronouns[g].possessive }

// ObjectPronoun returns "him", "her" or "them"
func (g Gender) ObjectPronoun() string { return genderPronouns[g].object }

// PersonalPronoun returns "he", "she" or "they"
func (g Gender) PersonalPronoun() string { return genderPronouns[g].personal }

// Investigator is a Call of Cthulhu player character
type Investigator struct {
	ID         string
	FirstName  string
	Surname    string
	Gender     Gender
	Occupation string
	Birthplace string
	Residence  string
	Age        int
	Era        Era

	Characteristics map[CharacteristicCode]*Characteristic
}

var _ core.Entity = (*Investigator)(nil)

// GetID returns the investigator's ID
func (i *Investigator) GetID() string {
	return i.ID
}

// GetType returns the entity type for rpg-toolkit
func (i *Investigator) GetType() string {
	return EntityTypeInvestigator
}

// FullName joins first name and surname
func (i *Investigator) FullName() string {
	if i.Surname == "" {
		return i.FirstName
	}
	return i.FirstName + " " + i.Surname
}

// Characteristic returns the characteristic for code
func (i *Investigator) Characteristic(code CharacteristicCode) (*Characteristic, error) {
	c, ok := i.Characteristics[code]
	if !ok {
		return nil, errors.NotFoundf("investigator has no characteristic %s", code).
			WithMeta("characteristic", string(code))
	}
	return c, nil
}

// SetCharacteristic sets the base of code, creating the characteristic if needed
func (i *Investigator) SetCharacteristic(code CharacteristicCode, base int) {
	if i.Characteristics == nil {
		i.Characteristics = make(map[CharacteristicCode]*Characteristic)
	}
	if c, ok := i.Characteristics[code]; ok {
		c.SetBase(base)
		return
	}
	i.Characteristics[code] = NewCharacteristic(code, base)
}
