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

var feedbackColumns = []string{
	"id",
	"company_id",
	"title",
	"description",
	"category",
	"status",
	"submitter_email",
	"vote_count",
	"created_at",
	"updated_at",
}

var returningFeedback = "RETURNING " + strings.Join(feedbackColumns, ", ")

func validateFeedbackReq(req *models.FeedbackReq) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	if !utils.ValidateUUID(req.CompanyID) {
		return fmt.Errorf("%w: companyId must be a UUID", models.ErrInvalidInput)
	}
	if req.Title == "" {
		return fmt.Errorf("%w: title should not be empty", models.ErrInvalidInput)
	}
	if req.Description == "" {
		return fmt.Errorf("%w: description should not be empty", models.ErrInvalidInput)
	}
	if _, err := models.ParseCategory(string(req.Category)); err != nil {
		return err
	}
	if req.SubmitterEmail != nil {
		email := strings.TrimSpace(*req.SubmitterEmail)
		if email == "" {
			req.SubmitterEmail = nil
		} else if !utils.ValidateEmail(email) {
			return models.ErrInvalidFormat
		} else {
			req.SubmitterEmail = &email
		}
	}
	return nil
}

func (sdb *SharedDB) CreateFeedback(ctx context.Context, req models.FeedbackReq) (*models.Feedback, error) {
	if err := validateFeedbackReq(&req); err != nil {
		return nil, err
	}
	sql, args, _ := psql.
		Insert("feedback").
		Columns("id", "company_id", "title", "description", "category", "submitter_email").
		Values(uuid.NewString(), req.CompanyID, req.Title, req.Description, string(req.Category), req.SubmitterEmail).
		Suffix(returningFeedback).
		ToSql()

	feedback := &models.Feedback{}
	err := pgxscan.Get(ctx, sdb.db, feedback, sql, args...)
	if isConstraintErr(err, pgForeignKeyViolation, feedbackCompanyFkey) {
		return nil, models.NotFoundError{Resource: "Company", Value: req.CompanyID}
	}
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

// ListFeedback returns the items matching filter, most voted first.
func (sdb *SharedDB) ListFeedback(ctx context.Context, filter models.FeedbackFilter) ([]models.Feedback, error) {
	query := psql.Select(feedbackColumns...).From("feedback")
	if filter.CompanyID != "" {
		query = query.Where(sq.Eq{"company_id": filter.CompanyID})
	}
	if filter.Status != "" {
		query = query.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Category != "" {
		query = query.Where(sq.Eq{"category": filter.Category})
	}
	if filter.Search != "" {
		pattern := "%" + utils.EscapeLike(filter.Search) + "%"
		query = query.Where(sq.Or{
			sq.ILike{"title": pattern},
			sq.ILike{"description": pattern},
		})
	}
	sql, args, _ := query.OrderBy("vote_count DESC", "created_at DESC").ToSql()

	items := []models.Feedback{}
	err := pgxscan.Select(ctx, sdb.db, &items, sql, args...)
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (sdb *SharedDB) GetFeedback(ctx context.Context, id string) (*models.Feedback, error) {
	return readFeedback(ctx, sdb.db, id, "")
}

// UpdateFeedback changes the lifecycle status of an item owned by companyID.
func (sdb *SharedDB) UpdateFeedback(ctx context.Context, id, companyID string, upd models.FeedbackUpdate) (*models.Feedback, error) {
	if upd.Status != nil {
		if _, err := models.ParseStatus(string(*upd.Status)); err != nil {
			return nil, err
		}
	}

	var feedback *models.Feedback
	err := execTx(ctx, sdb.db, func(ctx context.Context, tx DBTX) error {
		current, err := readFeedback(ctx, tx, id, "FOR NO KEY UPDATE")
		if err != nil {
			return err
		}
		if current.CompanyID != companyID {
			return models.ErrNotOwner
		}
		if upd.Status == nil {
			feedback = current
			return nil
		}

		sql, args, _ := psql.
			Update("feedback").
			Set("status", string(*upd.Status)).
			Set("updated_at", sq.Expr("now()")).
			Where(sq.Eq{"id": id}).
			Suffix(returningFeedback).
			ToSql()

		feedback = &models.Feedback{}
		return pgxscan.Get(ctx, tx, feedback, sql, args...)
	})
	if err != nil {
		return nil, err
	}
	return feedback, nil
}

// DeleteFeedback hard deletes an item owned by companyID. Its votes go with
// it through the ON DELETE CASCADE of votes_feedback_id_fkey.
func (sdb *SharedDB) DeleteFeedback(ctx context.Context, id, companyID string) error {
	return execTx(ctx, sdb.db, func(ctx context.Context, tx DBTX) error {
		current, err := readFeedback(ctx, tx, id, "FOR UPDATE")
		if err != nil {
			return err
		}
		if current.CompanyID != companyID {
			return models.ErrNotOwner
		}

		sql, args, _ := psql.Delete("feedback").Where(sq.Eq{"id": id}).ToSql()
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
}

func readFeedback(ctx context.Context, db DBTX, id string, lock string) (*models.Feedback, error) {
	query := psql.
		Select(feedbackColumns...).
		From("feedback").
		Where(sq.Eq{"id": id})
	if lock != "" {
		query = query.Suffix(lock)
	}
	sql, args, _ := query.ToSql()

	feedback := &models.Feedback{}
	err := pgxscan.Get(ctx, db, feedback, sql, args...)
	if pgxscan.NotFound(err) {
		return nil, models.FeedbackNotFound(id)
	}
	if err != nil {
		return nil, err
	}
	return feedback, nil
}
