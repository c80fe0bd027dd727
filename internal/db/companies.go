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
)

func (sdb *SharedDB) ListCompanies(ctx context.Context, name string) ([]models.Company, error) {
	query := psql.Select("id", "name", "slug", "created_at").From("companies")
	if name != "" {
		query = query.Where(sq.ILike{"name": "%" + utils.EscapeLike(name) + "%"})
	}
	sql, args, _ := query.OrderBy("name").ToSql()

	companies := []models.Company{}
	err := pgxscan.Select(ctx, sdb.db, &companies, sql, args...)
	if err != nil {
		return nil, err
	}
	return companies, nil
}

func (sdb *SharedDB) GetCompanyBySlug(ctx context.Context, slug string) (*models.Company, error) {
	return readCompanyBySlug(ctx, sdb.db, slug)
}

func (sdb *SharedDB) CreateCompany(ctx context.Context, company *models.Company) error {
	return insertCompany(ctx, sdb.db, company)
}

func readCompanyBySlug(ctx context.Context, db DBTX, slug string) (*models.Company, error) {
	sql, args, _ := psql.
		Select("id", "name", "slug", "created_at").
		From("companies").
		Where(sq.Eq{"slug": slug}).
		ToSql()

	company := &models.Company{}
	err := pgxscan.Get(ctx, db, company, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, models.NotFoundError{Resource: "Company", Key: "slug", Value: slug}
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func insertCompany(ctx context.Context, db DBTX, company *models.Company) error {
	company.Name = strings.TrimSpace(company.Name)
	if company.Name == "" {
		return fmt.Errorf("%w: company name should not be empty", models.ErrInvalidInput)
	}
	if !utils.ValidateSlug(company.Slug) {
		return fmt.Errorf("%w: slug %q", models.ErrInvalidInput, company.Slug)
	}
	sql, args, _ := psql.
		Insert("companies").
		Columns("id", "name", "slug").
		Values(uuid.NewString(), company.Name, company.Slug).
		Suffix("RETURNING id, created_at").
		ToSql()

	err := db.QueryRow(ctx, sql, args...).Scan(&company.ID, &company.CreatedAt)
	if isConstraintErr(err, pgUniqueViolation, companiesSlugKey) {
		return models.ErrSlugAlreadyExists
	}
	return err
}
