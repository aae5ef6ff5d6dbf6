package models

// Address is the input of an address verification.
type Address struct {
	Address1   string
	Address2   string
	City       string
	State      string
	PostalCode string
	Country    string
}

// AddressVerification is the verifier's answer. The normalized fields are
// only meaningful when Valid is true. Coordinates are nil when the verifier
// did not geocode the address.
type AddressVerification struct {
	Valid     bool
	Address1  string
	Address2  string
	City      string
	State     string
	Postal    string
	Latitude  *float64
	Longitude *float64
}

// AddressStatus is the outcome of verifying a lead's address.
type AddressStatus int

const (
	// AddressNotVerified: the lead was already checked, is missing, or lacks
	// address_1, postal_code or country. Nothing was sent to the verifier.
	AddressNotVerified AddressStatus = iota
	AddressValid
	AddressInvalid
)

func (s AddressStatus) String() string {
	switch s {
	case AddressValid:
		return "valid"
	case AddressInvalid:
		return "invalid"
	default:
		return "not verified"
	}
}
