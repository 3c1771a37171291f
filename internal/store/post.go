// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"fmt"

	"campusboard/internal/apperrors"
	"campusboard/internal/models"
)

// PostStore handles all post-related database operations, including the
// post_tags link table. Reads return posts with their votes and tag ids
// eagerly loaded so projections need no further queries.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, name, content, category_id, author_id, created_at, updated_at`

// scanPost scans a row into a Post struct.
func scanPost(scanner interface{ Scan(...any) error }) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Name, &p.Content, &p.CategoryID, &p.AuthorID,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindByID retrieves a post with its votes and tag links. Returns nil if
// not found.
func (s *PostStore) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find post by id: %w", err)
	}

	if p.Votes, err = s.loadVotes(ctx, id); err != nil {
		return nil, err
	}
	if p.TagIDs, err = s.loadTagIDs(ctx, id); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all posts with votes and tag links loaded, ordered by id.
func (s *PostStore) List(ctx context.Context) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+postColumns+` FROM posts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("scan post: %w", err)
		}
		posts = append(posts, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return posts, nil
	}

	// Batch-load votes and tag links, then group them by post in memory.
	votesByPost := make(map[int64][]models.Vote)
	voteRows, err := s.db.QueryContext(ctx, `
		SELECT id, voter_id, post_id, score, created_at FROM votes ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("list votes: %w", err)
	}
	defer voteRows.Close()
	for voteRows.Next() {
		var v models.Vote
		if err := voteRows.Scan(&v.ID, &v.VoterID, &v.PostID, &v.Score, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan vote: %w", err)
		}
		votesByPost[v.PostID] = append(votesByPost[v.PostID], v)
	}
	if err := voteRows.Err(); err != nil {
		return nil, err
	}

	tagsByPost := make(map[int64][]int64)
	tagRows, err := s.db.QueryContext(ctx, `
		SELECT post_id, tag_id FROM post_tags ORDER BY created_at, tag_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list post tags: %w", err)
	}
	defer tagRows.Close()
	for tagRows.Next() {
		var postID, tagID int64
		if err := tagRows.Scan(&postID, &tagID); err != nil {
			return nil, fmt.Errorf("scan post tag: %w", err)
		}
		tagsByPost[postID] = append(tagsByPost[postID], tagID)
	}
	if err := tagRows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Votes = votesByPost[posts[i].ID]
		posts[i].TagIDs = tagsByPost[posts[i].ID]
	}
	return posts, nil
}

// Create inserts a post and attaches its tag links in one transaction,
// so a failed link insert never leaves a half-written post behind.
func (s *PostStore) Create(ctx context.Context, p *models.Post, tagIDs []int64) (*models.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	out := &models.Post{}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO posts (name, content, category_id, author_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+postColumns,
		p.Name, p.Content, p.CategoryID, p.AuthorID,
	).Scan(
		&out.ID, &out.Name, &out.Content, &out.CategoryID, &out.AuthorID,
		&out.CreatedAt, &out.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	if err := attachTags(ctx, tx, out.ID, tagIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create post: %w", err)
	}

	// A new post has no votes yet and its links were just written in
	// request order, so the committed row can be returned directly
	// instead of re-read (a re-read could race a concurrent delete).
	out.TagIDs = append([]int64(nil), tagIDs...)
	return out, nil
}

// Update writes all mutable columns of a post.
func (s *PostStore) Update(ctx context.Context, p *models.Post) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE posts SET name = $1, content = $2, category_id = $3, updated_at = NOW()
		WHERE id = $4
	`, p.Name, p.Content, p.CategoryID, p.ID)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.New(apperrors.CodeNotFound, "post not found")
	}
	return nil
}

// ReplaceTags swaps a post's tag links for the given set in one
// transaction. An empty set clears all links. Readers never observe the
// post with its tags half replaced.
func (s *PostStore) ReplaceTags(ctx context.Context, postID int64, tagIDs []int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("clear post tags: %w", err)
	}
	if err := attachTags(ctx, tx, postID, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace tags: %w", err)
	}
	return nil
}

// Delete removes a post; votes and tag links cascade in the database.
func (s *PostStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperrors.New(apperrors.CodeNotFound, "post not found")
	}
	return nil
}

// attachTags inserts one link row per tag id within the given transaction.
func attachTags(ctx context.Context, tx *sql.Tx, postID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)
		`, postID, tagID); err != nil {
			return fmt.Errorf("attach tag %d: %w", tagID, err)
		}
	}
	return nil
}

// loadVotes returns a post's votes in insertion order.
func (s *PostStore) loadVotes(ctx context.Context, postID int64) ([]models.Vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, voter_id, post_id, score, created_at FROM votes WHERE post_id = $1 ORDER BY id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("load votes: %w", err)
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

// loadTagIDs returns a post's tag links in link order.
func (s *PostStore) loadTagIDs(ctx context.Context, postID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT tag_id FROM post_tags WHERE post_id = $1 ORDER BY created_at, tag_id
	`, postID)
	if err != nil {
		return nil, fmt.Errorf("load post tags: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan post tag: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
