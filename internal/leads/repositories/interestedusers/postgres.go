package interestedusers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/kitportal/internal/common"
	"github.com/dmitrijs2005/kitportal/internal/dbx"
	"github.com/dmitrijs2005/kitportal/internal/leads/models"
)

type PostgresRepository struct {
	db       dbx.DBTX
	verifier AddressVerifier
}

func NewPostgresRepository(db dbx.DBTX, verifier AddressVerifier) *PostgresRepository {
	return &PostgresRepository{db: db, verifier: verifier}
}

func dbError(err error) error {
	return fmt.Errorf("%w: db error: %w", common.ErrRepository, err)
}

func (r *PostgresRepository) Insert(ctx context.Context, u *models.InterestedUser) (string, error) {
	query :=
		`INSERT INTO campaign.interested_users (
			campaign_id, acquisition_source, first_name, last_name,
			email, phone, address_1, address_2, city, state,
			postal_code, country, latitude, longitude, confirm_consent,
			ip_address, address_checked, address_valid, over_18,
			creation_timestamp)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11, $12, $13, $14, $15, $16, $17, $18, $19, NOW())
		 RETURNING interested_user_id
		 `

	var id sql.NullString
	err := r.db.QueryRowContext(ctx, query,
		u.CampaignID, u.AcquisitionSource, u.FirstName, u.LastName,
		u.Email, u.Phone, u.Address1, u.Address2, u.City, u.State,
		u.PostalCode, u.Country, u.Latitude, u.Longitude, u.ConfirmConsent,
		u.IPAddress, u.AddressChecked, u.AddressValid, u.Over18,
	).Scan(&id)

	if err != nil {
		return "", dbError(err)
	}
	if !id.Valid || id.String == "" {
		return "", fmt.Errorf("%w: error inserting interested user", common.ErrRepository)
	}

	u.ID = id.String
	return id.String, nil
}

// VerifyAddress checks a lead's address once. Leads that were already
// checked, or that lack address_1, postal_code or country, are left alone
// and AddressNotVerified is returned without calling the verifier.
// A valid answer replaces the address with the verifier's normalized form
// and adds coordinates; country is never rewritten.
func (r *PostgresRepository) VerifyAddress(ctx context.Context, id string) (models.AddressStatus, error) {
	query :=
		`SELECT address_1, address_2, city, state, postal_code, country
		 FROM campaign.interested_users
		 WHERE interested_user_id = $1
		 AND address_checked = false AND address_1 != ''
		 AND postal_code != '' AND country != ''
		 `

	var addr1, addr2, city, state, postal, country sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(&addr1, &addr2, &city, &state, &postal, &country)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AddressNotVerified, nil
		}
		return models.AddressNotVerified, dbError(err)
	}

	res, err := r.verifier.Verify(ctx, models.Address{
		Address1:   addr1.String,
		Address2:   addr2.String,
		City:       city.String,
		State:      state.String,
		PostalCode: postal.String,
		Country:    country.String,
	})
	if err != nil {
		return models.AddressNotVerified, fmt.Errorf("%w: address verification: %w", common.ErrRepository, err)
	}

	if !res.Valid {
		query =
			`UPDATE campaign.interested_users
			 SET address_checked = true, address_valid = false
			 WHERE interested_user_id = $1
			 `
		if _, err := r.db.ExecContext(ctx, query, id); err != nil {
			return models.AddressNotVerified, dbError(err)
		}
		return models.AddressInvalid, nil
	}

	query =
		`UPDATE campaign.interested_users
		 SET address_checked = true, address_valid = true,
			address_1 = $1, address_2 = $2, city = $3,
			state = $4, postal_code = $5,
			latitude = $6, longitude = $7
		 WHERE interested_user_id = $8
		 `
	if _, err := r.db.ExecContext(ctx, query,
		res.Address1, res.Address2, res.City, res.State, res.Postal,
		res.Latitude, res.Longitude, id); err != nil {
		return models.AddressNotVerified, dbError(err)
	}

	return models.AddressValid, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.InterestedUser, error) {
	query :=
		`SELECT interested_user_id, campaign_id, acquisition_source, first_name, last_name,
			email, phone, address_1, address_2, city, state, postal_code, country,
			latitude, longitude, confirm_consent, ip_address, address_checked,
			address_valid, over_18, creation_timestamp
		 FROM campaign.interested_users
		 WHERE interested_user_id = $1
		 `

	u := &models.InterestedUser{}
	var source, phone, addr1, addr2, city, state, postal, country, ip sql.NullString
	var lat, lon sql.NullFloat64

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&u.ID, &u.CampaignID, &source, &u.FirstName, &u.LastName,
		&u.Email, &phone, &addr1, &addr2, &city, &state, &postal, &country,
		&lat, &lon, &u.ConfirmConsent, &ip, &u.AddressChecked,
		&u.AddressValid, &u.Over18, &u.CreationTimestamp,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, dbError(err)
	}

	u.AcquisitionSource = source.String
	u.Phone = phone.String
	u.Address1 = addr1.String
	u.Address2 = addr2.String
	u.City = city.String
	u.State = state.String
	u.PostalCode = postal.String
	u.Country = country.String
	u.IPAddress = ip.String
	if lat.Valid {
		u.Latitude = &lat.Float64
	}
	if lon.Valid {
		u.Longitude = &lon.Float64
	}

	return u, nil
}

// ListPendingVerification returns the ids of leads whose address has not
// been checked yet, oldest first.
func (r *PostgresRepository) ListPendingVerification(ctx context.Context) ([]string, error) {
	query :=
		`SELECT interested_user_id FROM campaign.interested_users
		 WHERE address_checked = false
		 ORDER BY creation_timestamp
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbError(err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dbError(err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError(err)
	}

	return ids, nil
}
