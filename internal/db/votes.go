package db

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/blackzarifa/feedback-board/internal/identity"
	"github.com/blackzarifa/feedback-board/internal/models"
	"github.com/georgysavva/scany/pgxscan"
	"github.com/google/uuid"
)

var voteColumns = []string{"id", "feedback_id", "voter_identifier", "created_at"}

// CreateVote records a vote of voter on the feedback item and increments the
// item's vote_count in the same transaction. A second vote from the same
// voter fails with models.ErrAlreadyVoted.
func (sdb *SharedDB) CreateVote(ctx context.Context, feedbackID string, voter identity.Requester) (*models.Vote, error) {
	voterID := voter.VoterID()
	var vote *models.Vote
	err := execTx(ctx, sdb.db, func(ctx context.Context, tx DBTX) error {
		exists, err := feedbackExists(ctx, tx, feedbackID)
		if err != nil {
			return err
		}
		if !exists {
			return models.FeedbackNotFound(feedbackID)
		}

		// Early exit only: two racing requests can both get past this
		// check, the unique constraint rejects the loser on insert.
		voted, err := hasVoted(ctx, tx, feedbackID, voterID)
		if err != nil {
			return err
		}
		if voted {
			return models.ErrAlreadyVoted
		}

		vote, err = insertVote(ctx, tx, feedbackID, voterID)
		if err != nil {
			return err
		}
		return adjustVoteCount(ctx, tx, feedbackID, 1)
	})
	if err != nil {
		return nil, err
	}
	return vote, nil
}

// RemoveVote deletes the vote of voter on the feedback item and decrements
// the item's vote_count in the same transaction.
func (sdb *SharedDB) RemoveVote(ctx context.Context, feedbackID string, voter identity.Requester) error {
	voterID := voter.VoterID()
	return execTx(ctx, sdb.db, func(ctx context.Context, tx DBTX) error {
		deleted, err := deleteVote(ctx, tx, feedbackID, voterID)
		if err != nil {
			return err
		}
		if !deleted {
			exists, err := feedbackExists(ctx, tx, feedbackID)
			if err != nil {
				return err
			}
			if !exists {
				return models.FeedbackNotFound(feedbackID)
			}
			return models.ErrVoteNotFound
		}
		return adjustVoteCount(ctx, tx, feedbackID, -1)
	})
}

// FindUserVotes lists the votes voter cast on any of feedbackIDs.
func (sdb *SharedDB) FindUserVotes(ctx context.Context, feedbackIDs []string, voter identity.Requester) ([]models.Vote, error) {
	votes := []models.Vote{}
	if len(feedbackIDs) == 0 {
		return votes, nil
	}

	sql, args, _ := psql.
		Select(voteColumns...).
		From("votes").
		Where(sq.Eq{
			"voter_identifier": voter.VoterID(),
			"feedback_id":      feedbackIDs,
		}).
		OrderBy("created_at").
		ToSql()

	err := pgxscan.Select(ctx, sdb.db, &votes, sql, args...)
	if err != nil {
		return nil, err
	}
	return votes, nil
}

// CountVotes counts the ledger rows of a feedback item. It is the value
// vote_count must always agree with.
func (sdb *SharedDB) CountVotes(ctx context.Context, feedbackID string) (int, error) {
	sql, args, _ := psql.
		Select("COUNT(*)").
		From("votes").
		Where(sq.Eq{"feedback_id": feedbackID}).
		ToSql()

	var count int
	err := pgxscan.Get(ctx, sdb.db, &count, sql, args...)
	return count, err
}

func feedbackExists(ctx context.Context, db DBTX, feedbackID string) (bool, error) {
	sql, args, _ := psql.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("feedback").
		Where(sq.Eq{"id": feedbackID}).
		Suffix(")").
		ToSql()

	var exists bool
	err := pgxscan.Get(ctx, db, &exists, sql, args...)
	return exists, err
}

func hasVoted(ctx context.Context, db DBTX, feedbackID, voterID string) (bool, error) {
	sql, args, _ := psql.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("votes").
		Where(sq.Eq{"feedback_id": feedbackID, "voter_identifier": voterID}).
		Suffix(")").
		ToSql()

	var voted bool
	err := pgxscan.Get(ctx, db, &voted, sql, args...)
	return voted, err
}

func insertVote(ctx context.Context, db DBTX, feedbackID, voterID string) (*models.Vote, error) {
	sql, args, _ := psql.
		Insert("votes").
		Columns("id", "feedback_id", "voter_identifier").
		Values(uuid.NewString(), feedbackID, voterID).
		Suffix("RETURNING id, feedback_id, voter_identifier, created_at").
		ToSql()

	vote := &models.Vote{}
	err := pgxscan.Get(ctx, db, vote, sql, args...)
	switch {
	case isConstraintErr(err, pgUniqueViolation, votesFeedbackVoterKey):
		return nil, models.ErrAlreadyVoted
	case isConstraintErr(err, pgForeignKeyViolation, votesFeedbackFkey):
		// The item was deleted after our existence check.
		return nil, models.FeedbackNotFound(feedbackID)
	case err != nil:
		return nil, err
	}
	return vote, nil
}

// deleteVote reports whether a vote row was removed. Of two concurrent
// removals by the same voter at most one sees true.
func deleteVote(ctx context.Context, db DBTX, feedbackID, voterID string) (bool, error) {
	sql, args, _ := psql.
		Delete("votes").
		Where(sq.Eq{"feedback_id": feedbackID, "voter_identifier": voterID}).
		ToSql()

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// adjustVoteCount applies delta as a single UPDATE so the row lock taken by
// Postgres serializes concurrent voters on the same item.
func adjustVoteCount(ctx context.Context, db DBTX, feedbackID string, delta int) error {
	sql, args, _ := psql.
		Update("feedback").
		Set("vote_count", sq.Expr("vote_count + ?", delta)).
		Where(sq.Eq{"id": feedbackID}).
		ToSql()

	tag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return models.FeedbackNotFound(feedbackID)
	}
	return nil
}
