package enums

import "fmt"

// BusinessType selects the onboarding preset for a tenant.
type BusinessType string

const (
	BusinessTypeFruits     BusinessType = "fruits"
	BusinessTypeNursery    BusinessType = "nursery"
	BusinessTypeNonVeg     BusinessType = "nonveg"
	BusinessTypeElectrical BusinessType = "electrical"
	BusinessTypeVegetables BusinessType = "vegetables"
	BusinessTypeBakery     BusinessType = "bakery"
	BusinessTypeFashion    BusinessType = "fashion"
	BusinessTypePharmacy   BusinessType = "pharmacy"
)

var validBusinessTypes = []BusinessType{
	BusinessTypeFruits,
	BusinessTypeNursery,
	BusinessTypeNonVeg,
	BusinessTypeElectrical,
	BusinessTypeVegetables,
	BusinessTypeBakery,
	BusinessTypeFashion,
	BusinessTypePharmacy,
}

// String implements fmt.Stringer.
func (b BusinessType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BusinessType.
func (b BusinessType) IsValid() bool {
	for _, candidate := range validBusinessTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// BusinessTypes lists every supported business type in preset order.
func BusinessTypes() []BusinessType {
	out := make([]BusinessType, len(validBusinessTypes))
	copy(out, validBusinessTypes)
	return out
}

// ParseBusinessType converts raw input into a BusinessType.
func ParseBusinessType(value string) (BusinessType, error) {
	for _, candidate := range validBusinessTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business type %q", value)
}
