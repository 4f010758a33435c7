package enums

import "fmt"

// PaymentSelection distinguishes the two checkout payment variants.
type PaymentSelection string

const (
	PaymentSelectionSaved PaymentSelection = "saved"
	PaymentSelectionNew   PaymentSelection = "new"
)

var validPaymentSelections = []PaymentSelection{
	PaymentSelectionSaved,
	PaymentSelectionNew,
}

// String implements fmt.Stringer.
func (p PaymentSelection) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentSelection.
func (p PaymentSelection) IsValid() bool {
	for _, candidate := range validPaymentSelections {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentSelection converts raw input into a PaymentSelection.
func ParsePaymentSelection(value string) (PaymentSelection, error) {
	for _, candidate := range validPaymentSelections {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment selection %q", value)
}
