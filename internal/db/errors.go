package db

import (
	"errors"

	"github.com/jackc/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Constraint names from migrations/000001_init.up.sql.
const (
	votesFeedbackVoterKey = "votes_feedback_voter_key"
	votesFeedbackFkey     = "votes_feedback_id_fkey"
	feedbackCompanyFkey   = "feedback_company_id_fkey"
	companiesSlugKey      = "companies_slug_key"
	usersEmailKey         = "users_email_key"
	usersCompanyFkey      = "users_company_id_fkey"
)

func pgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}
	return nil, false
}

func isConstraintErr(err error, code, constraint string) bool {
	pgErr, ok := pgError(err)
	return ok && pgErr.Code == code && pgErr.ConstraintName == constraint
}
