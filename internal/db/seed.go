package db

import (
	"context"
	"errors"

	"github.com/blackzarifa/feedback-board/internal/models"
	"golang.org/x/crypto/bcrypt"
)

const (
	SeedCompanyName   = "Test Company"
	SeedCompanySlug   = "test-company"
	SeedAdminEmail    = "admin@testcompany.com"
	SeedAdminPassword = "password123"
)

type SeedResult struct {
	Company        *models.Company
	CompanyCreated bool
	AdminCreated   bool
}

// Seed creates the demo company and its admin unless they already exist.
func (sdb *SharedDB) Seed(ctx context.Context) (*SeedResult, error) {
	res := &SeedResult{}
	err := execTx(ctx, sdb.db, func(ctx context.Context, tx DBTX) error {
		company, err := readCompanyBySlug(ctx, tx, SeedCompanySlug)
		if errors.Is(err, models.ErrNotFound) {
			company = &models.Company{Name: SeedCompanyName, Slug: SeedCompanySlug}
			err = insertCompany(ctx, tx, company)
			res.CompanyCreated = err == nil
		}
		if err != nil {
			return err
		}
		res.Company = company

		// A failed insert aborts the whole transaction, so check first.
		exists, err := emailUsed(ctx, tx, SeedAdminEmail)
		if err != nil || exists {
			return err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(SeedAdminPassword), sdb.bcryptCost)
		if err != nil {
			return err
		}
		admin := &models.User{Email: SeedAdminEmail, CompanyID: company.ID}
		if err := insertUser(ctx, tx, admin, hash); err != nil {
			return err
		}
		res.AdminCreated = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
