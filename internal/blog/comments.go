// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package blog

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"penblog/internal/models"
)

// Comments is the append-only comment ledger. Comments are never edited
// or removed individually.
type Comments struct {
	store CommentStore
	opts  Options
	tel   *telemetry
}

// NewComments creates the comment ledger.
func NewComments(store CommentStore, opts Options) *Comments {
	return &Comments{store: store, opts: opts.withDefaults(), tel: newTelemetry()}
}

// Add appends a comment by authorID to the post. uuid.Nil means no
// authenticated author.
func (s *Comments) Add(ctx context.Context, postID, authorID uuid.UUID, content string) (err error) {
	ctx, span := s.tel.start(ctx, "comments.add", attribute.String("post_id", postID.String()))
	defer func() { s.tel.end(span, err) }()

	content = strings.TrimSpace(content)
	if content == "" {
		return &models.Error{Base: models.ErrInvalidInput, Message: "Comment content is required"}
	}

	authorID, err = s.opts.author("comments.add", authorID)
	if err != nil {
		return err
	}

	err = s.store.Append(ctx, &models.Comment{
		PostID:  postID,
		Author:  models.AuthorRef{ID: authorID},
		Content: content,
	})
	if err != nil {
		return err
	}

	s.tel.wrote(ctx, "comments.add")
	return nil
}
