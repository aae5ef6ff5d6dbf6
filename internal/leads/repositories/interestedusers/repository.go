// Package interestedusers stores marketing leads in campaign.interested_users
// and runs their one-shot address verification.
package interestedusers

import (
	"context"

	"github.com/dmitrijs2005/kitportal/internal/leads/models"
)

// AddressVerifier resolves an address to its normalized, deliverable form.
type AddressVerifier interface {
	Verify(ctx context.Context, a models.Address) (*models.AddressVerification, error)
}

type Repository interface {
	Insert(ctx context.Context, user *models.InterestedUser) (string, error)
	VerifyAddress(ctx context.Context, id string) (models.AddressStatus, error)
	Get(ctx context.Context, id string) (*models.InterestedUser, error)
	ListPendingVerification(ctx context.Context) ([]string, error)
}
