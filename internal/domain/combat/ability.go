package combat

// Ability identifies a saving-throw ability by its short key
type Ability string

var Abilities = []Ability{AbilityStrength, AbilityDexterity, AbilityConstitution, AbilityIntelligence, AbilityWisdom, AbilityCharisma}

const (
	AbilityNone         Ability = ""
	AbilityStrength     Ability = "str"
	AbilityDexterity    Ability = "dex"
	AbilityConstitution Ability = "con"
	AbilityIntelligence Ability = "int"
	AbilityWisdom       Ability = "wis"
	AbilityCharisma     Ability = "cha"
)

// IsValid reports whether the ability is one of the six save abilities.
func (a Ability) IsValid() bool {
	for _, known := range Abilities {
		if a == known {
			return true
		}
	}
	return false
}
