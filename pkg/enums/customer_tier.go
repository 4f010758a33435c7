package enums

import "fmt"

// CustomerTier reflects the loyalty status assigned to a customer account.
type CustomerTier string

const (
	CustomerTierRegular  CustomerTier = "regular"
	CustomerTierSilver   CustomerTier = "silver"
	CustomerTierGold     CustomerTier = "gold"
	CustomerTierPlatinum CustomerTier = "platinum"
)

var validCustomerTiers = []CustomerTier{
	CustomerTierRegular,
	CustomerTierSilver,
	CustomerTierGold,
	CustomerTierPlatinum,
}

// String implements fmt.Stringer.
func (c CustomerTier) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CustomerTier.
func (c CustomerTier) IsValid() bool {
	for _, candidate := range validCustomerTiers {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseCustomerTier converts raw input into a CustomerTier.
func ParseCustomerTier(value string) (CustomerTier, error) {
	for _, candidate := range validCustomerTiers {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid customer tier %q", value)
}
