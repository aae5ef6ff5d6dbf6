// Package models holds the private API resources the portal reads and writes.
package models

// Address is the postal address of an account.
type Address struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostCode    string `json:"post_code"`
	CountryCode string `json:"country_code"`
}

type Account struct {
	AccountID string  `json:"account_id"`
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name,omitempty"`
	Email     string  `json:"email,omitempty"`
	Address   Address `json:"address"`
}

// NewAccount is the body of POST /accounts. KitName ties the account to the
// kit the user received.
type NewAccount struct {
	FirstName string  `json:"first_name,omitempty"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Address   Address `json:"address"`
	KitName   string  `json:"kit_name"`
}
