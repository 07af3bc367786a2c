// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"penblog/internal/models"
)

// CommentStore appends to the post_comments table. Comments are never
// updated; they disappear only when their post is deleted.
type CommentStore struct {
	db *DB
}

// NewCommentStore creates a new CommentStore.
func NewCommentStore(db *DB) *CommentStore {
	return &CommentStore{db: db}
}

// Append adds c to the end of its post's comment list, assigning the id
// and timestamp. Returns models.ErrPostNotFound when the post is missing,
// including when it is deleted concurrently.
func (s *CommentStore) Append(ctx context.Context, c *models.Comment) error {
	c.ID = uuid.New()
	c.CreatedAt = now()

	err := s.db.Transaction(ctx, func(tx *sqlx.Tx) error {
		var n int
		_, err := get(ctx, tx, &n, s.db.sb.Select("COUNT(*)").From("posts").
			Where(sq.Eq{"id": c.PostID.String()}))
		if err != nil {
			return err
		}
		if n == 0 {
			return models.ErrPostNotFound
		}

		_, err = exec(ctx, tx, s.db.sb.Insert("post_comments").
			Columns("id", "post_id", "author_id", "content", "created_at").
			Values(c.ID.String(), c.PostID.String(), c.Author.ID.String(), c.Content, c.CreatedAt))
		return err
	})
	switch {
	case errors.Is(err, models.ErrPostNotFound), isForeignKeyViolation(err):
		return models.ErrPostNotFound
	case err != nil:
		return fmt.Errorf("append comment: %w", err)
	}
	return nil
}
