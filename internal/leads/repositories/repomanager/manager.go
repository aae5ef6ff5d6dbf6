package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/kitportal/internal/dbx"
	"github.com/dmitrijs2005/kitportal/internal/leads/repositories/interestedusers"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	InterestedUsers(db dbx.DBTX) interestedusers.Repository
}
