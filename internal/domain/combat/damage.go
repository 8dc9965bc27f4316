package combat

import "strings"

// DamageType categorizes damage for resistance resolution
type DamageType string

const (
	DamageTypeNone        DamageType = ""
	DamageTypeAcid        DamageType = "acid"
	DamageTypeBludgeoning DamageType = "bludgeoning"
	DamageTypeCold        DamageType = "cold"
	DamageTypeFire        DamageType = "fire"
	DamageTypeForce       DamageType = "force"
	DamageTypeLightning   DamageType = "lightning"
	DamageTypeNecrotic    DamageType = "necrotic"
	DamageTypePiercing    DamageType = "piercing"
	DamageTypePoison      DamageType = "poison"
	DamageTypePsychic     DamageType = "psychic"
	DamageTypeRadiant     DamageType = "radiant"
	DamageTypeSlashing    DamageType = "slashing"
	DamageTypeThunder     DamageType = "thunder"
)

// DamageTypes lists every concrete damage type
var DamageTypes = []DamageType{
	DamageTypeAcid,
	DamageTypeBludgeoning,
	DamageTypeCold,
	DamageTypeFire,
	DamageTypeForce,
	DamageTypeLightning,
	DamageTypeNecrotic,
	DamageTypePiercing,
	DamageTypePoison,
	DamageTypePsychic,
	DamageTypeRadiant,
	DamageTypeSlashing,
	DamageTypeThunder,
}

// IsValid reports whether the damage type is a known type. The zero value is
// valid: untyped damage passes through resistance resolution unmodified.
func (d DamageType) IsValid() bool {
	if d == DamageTypeNone {
		return true
	}
	for _, known := range DamageTypes {
		if d == known {
			return true
		}
	}
	return false
}

// ParseDamageType maps a reference-data key onto a damage type. Unknown keys
// return DamageTypeNone and false so loose upstream data degrades instead of
// failing.
func ParseDamageType(key string) (DamageType, bool) {
	dt := DamageType(strings.ToLower(strings.TrimSpace(key)))
	if dt == DamageTypeNone || !dt.IsValid() {
		return DamageTypeNone, false
	}
	return dt, true
}
