// Package services contains the leads business logic. Every operation runs
// its repository calls inside one database transaction.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/kitportal/internal/dbx"
	"github.com/dmitrijs2005/kitportal/internal/leads/models"
	"github.com/dmitrijs2005/kitportal/internal/leads/repositories/repomanager"
	"github.com/dmitrijs2005/kitportal/internal/logging"
	"github.com/google/uuid"
)

var ErrInvalidLead = errors.New("invalid lead")

// VerifyReport counts the outcomes of a VerifyPending run.
type VerifyReport struct {
	Pending int
	Valid   int
	Invalid int
	Skipped int
}

// InterestedUserService registers leads and verifies their addresses.
type InterestedUserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewInterestedUserService(db *sql.DB, m repomanager.RepositoryManager, logger logging.Logger) *InterestedUserService {
	return &InterestedUserService{db: db, repomanager: m, logger: logger}
}

// Register validates and inserts a lead, returning its id.
func (s *InterestedUserService) Register(ctx context.Context, u *models.InterestedUser) (string, error) {
	if err := validate(u); err != nil {
		return "", err
	}

	id, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (string, error) {
		return s.repomanager.InterestedUsers(tx).Insert(ctx, u)
	})
	if err != nil {
		return "", fmt.Errorf("error registering lead: %w", err)
	}

	s.logger.Info(ctx, "lead registered", "interested_user_id", id, "campaign_id", u.CampaignID.String())
	return id, nil
}

// VerifyAddress runs address verification for one lead.
func (s *InterestedUserService) VerifyAddress(ctx context.Context, id string) (models.AddressStatus, error) {
	status, err := dbx.InTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) (models.AddressStatus, error) {
		return s.repomanager.InterestedUsers(tx).VerifyAddress(ctx, id)
	})
	if err != nil {
		return models.AddressNotVerified, fmt.Errorf("error verifying address: %w", err)
	}

	s.logger.Info(ctx, "address verification", "interested_user_id", id, "status", status.String())
	return status, nil
}

// Get loads one lead.
func (s *InterestedUserService) Get(ctx context.Context, id string) (*models.InterestedUser, error) {
	return s.repomanager.InterestedUsers(s.db).Get(ctx, id)
}

// VerifyPending verifies every lead whose address has not been checked,
// one transaction per lead. It stops at the first failure and returns the
// counts accumulated so far together with the error.
func (s *InterestedUserService) VerifyPending(ctx context.Context) (VerifyReport, error) {
	var report VerifyReport

	ids, err := s.repomanager.InterestedUsers(s.db).ListPendingVerification(ctx)
	if err != nil {
		return report, fmt.Errorf("error listing pending leads: %w", err)
	}
	report.Pending = len(ids)

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		status, err := s.VerifyAddress(ctx, id)
		if err != nil {
			return report, err
		}

		switch status {
		case models.AddressValid:
			report.Valid++
		case models.AddressInvalid:
			report.Invalid++
		default:
			report.Skipped++
		}
	}

	return report, nil
}

func validate(u *models.InterestedUser) error {
	switch {
	case u == nil:
		return ErrInvalidLead
	case u.CampaignID == uuid.Nil:
		return fmt.Errorf("%w: campaign id is required", ErrInvalidLead)
	case strings.TrimSpace(u.FirstName) == "" || strings.TrimSpace(u.LastName) == "":
		return fmt.Errorf("%w: first and last name are required", ErrInvalidLead)
	case !strings.Contains(u.Email, "@"):
		return fmt.Errorf("%w: email %q is not valid", ErrInvalidLead, u.Email)
	}
	return nil
}
