// Package models holds the records the leads console reads and writes.
package models

import (
	"time"

	"github.com/google/uuid"
)

// InterestedUser is one marketing lead row in campaign.interested_users.
// Address fields and the checked/valid flags are rewritten once by address
// verification; everything else is fixed at insert.
type InterestedUser struct {
	ID                string
	CampaignID        uuid.UUID
	AcquisitionSource string
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Address1          string
	Address2          string
	City              string
	State             string
	PostalCode        string
	Country           string
	Latitude          *float64
	Longitude         *float64
	ConfirmConsent    bool
	IPAddress         string
	AddressChecked    bool
	AddressValid      bool
	Over18            bool
	CreationTimestamp time.Time
}

// Address returns the postal address as submitted.
func (u *InterestedUser) Address() Address {
	return Address{
		Address1:   u.Address1,
		Address2:   u.Address2,
		City:       u.City,
		State:      u.State,
		PostalCode: u.PostalCode,
		Country:    u.Country,
	}
}
