// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"campusboard/internal/apperrors"
	"campusboard/internal/models"
)

// pgForeignKeyViolation is the PostgreSQL error code for a failed
// foreign key constraint (class 23, code 23503).
const pgForeignKeyViolation = "23503"

// VoteStore is the vote ledger: at most one signed score per (voter, post)
// pair, plus the derived aggregate computations.
type VoteStore struct {
	db *sql.DB
}

// NewVoteStore creates a new VoteStore with the given database connection.
func NewVoteStore(db *sql.DB) *VoteStore {
	return &VoteStore{db: db}
}

// ValidScore reports whether a vote value is in the allowed set {-1, 0, 1}.
// A zero score is a meaningful retraction, not the absence of a vote.
func ValidScore(score int) bool {
	return score == -1 || score == 0 || score == 1
}

// Cast records a voter's score on a post, replacing any prior vote by the
// same voter. The upsert is a single statement keyed on the (voter_id,
// post_id) unique constraint, so concurrent casts serialize in PostgreSQL.
// Returns the voter's stored score and the post's fresh aggregate.
func (s *VoteStore) Cast(ctx context.Context, voterID, postID int64, score int) (int, int, error) {
	if !ValidScore(score) {
		return 0, 0, apperrors.New(apperrors.CodeInvalidScore, "vote score must be -1, 0 or 1")
	}

	// No separate existence check: the post_id foreign key rejects a
	// missing (or concurrently deleted) post atomically with the write.
	var stored int
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO votes (voter_id, post_id, score)
		VALUES ($1, $2, $3)
		ON CONFLICT ON CONSTRAINT votes_voter_post_unique
		DO UPDATE SET score = EXCLUDED.score, updated_at = NOW()
		RETURNING score
	`, voterID, postID, score).Scan(&stored)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return 0, 0, apperrors.Wrap(apperrors.CodeNotFound, "post not found", err)
		}
		return 0, 0, fmt.Errorf("cast vote: %w", err)
	}

	aggregate, err := s.AggregateScore(ctx, postID)
	if err != nil {
		return 0, 0, err
	}
	return stored, aggregate, nil
}

// AggregateScore returns the sum of all vote scores for a post, 0 when no
// votes exist. Always computed fresh from the ledger.
func (s *VoteStore) AggregateScore(ctx context.Context, postID int64) (int, error) {
	var sum int
	err := s.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(score), 0) FROM votes WHERE post_id = $1
	`, postID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("aggregate score: %w", err)
	}
	return sum, nil
}

// ViewerScore returns the given voter's current score on a post, 0 when
// the voter never voted.
func (s *VoteStore) ViewerScore(ctx context.Context, postID, voterID int64) (int, error) {
	var score int
	err := s.db.QueryRowContext(ctx, `
		SELECT score FROM votes WHERE post_id = $1 AND voter_id = $2
	`, postID, voterID).Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("viewer score: %w", err)
	}
	return score, nil
}

// ListByPost returns a post's votes in insertion order.
func (s *VoteStore) ListByPost(ctx context.Context, postID int64) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, voter_id, post_id, score, created_at FROM votes WHERE post_id = $1 ORDER BY id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("list votes by post: %w", err)
	}
	defer rows.Close()

	var votes []models.Vote
	for rows.Next() {
		var v models.Vote
		if err := rows.Scan(&v.ID, &v.VoterID, &v.PostID, &v.Score, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votes = append(votes, v)
	}
	return votes, rows.Err()
}
