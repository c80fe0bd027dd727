package db

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/blackzarifa/feedback-board/internal/models"
	"github.com/blackzarifa/feedback-board/internal/utils"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func insertUser(ctx context.Context, db DBTX, user *models.User, hash []byte) error {
	sql, args, _ := psql.
		Insert("users").
		Columns("id", "email", "password_hash", "company_id").
		Values(uuid.NewString(), user.Email, string(hash), user.CompanyID).
		Suffix("RETURNING id, created_at").
		ToSql()

	err := db.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt)
	if isConstraintErr(err, pgUniqueViolation, usersEmailKey) {
		return models.ErrEmailAlreadyUsed
	}
	if isConstraintErr(err, pgForeignKeyViolation, usersCompanyFkey) {
		return models.NotFoundError{Resource: "Company", Value: user.CompanyID}
	}
	return err
}

// CreateUser registers an admin of user.CompanyID.
func (sdb *SharedDB) CreateUser(ctx context.Context, user *models.User, passwd string) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if !utils.ValidateEmail(user.Email) {
		return models.ErrInvalidFormat
	}
	if !utils.ValidateUUID(user.CompanyID) {
		return fmt.Errorf("%w: companyId must be a UUID", models.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(passwd), sdb.bcryptCost)
	if err != nil {
		return err
	}
	return insertUser(ctx, sdb.db, user, hash)
}

// Authenticate returns the user owning email if passwd matches. Unknown
// emails and wrong passwords both yield models.ErrBadCredentials.
func (sdb *SharedDB) Authenticate(ctx context.Context, email string, passwd string) (*models.User, error) {
	sql, args, _ := psql.
		Select("id", "email", "password_hash", "company_id", "created_at").
		From("users").
		Where(sq.Eq{"email": strings.ToLower(strings.TrimSpace(email))}).
		ToSql()

	user := &models.User{}
	err := pgxscan.Get(ctx, sdb.db, user, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, models.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(passwd))
	if compareErr != nil {
		return nil, models.ErrBadCredentials
	}
	return user, nil
}

func emailUsed(ctx context.Context, db DBTX, email string) (bool, error) {
	sql, args, _ := psql.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("users").
		Where(sq.Eq{"email": email}).
		Suffix(")").
		ToSql()

	var used bool
	err := pgxscan.Get(ctx, db, &used, sql, args...)
	return used, err
}
