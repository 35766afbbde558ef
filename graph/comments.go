package graph

import (
	"context"
	"strings"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/internal/permissions"
)

// CommentAuthor — публичная проекция
func (r *Resolver) CommentAuthor(ctx context.Context, parent *model.Comment) (*model.User, error) {
	return r.publicProfileByID(parent.AuthorID)
}

// CommentPost — родительский пост комментария
func (r *Resolver) CommentPost(ctx context.Context, parent *model.Comment) (*model.Post, error) {
	return r.PostStore.GetPostById(parent.PostID)
}

// CommentReplies — открытое чтение
func (r *Resolver) CommentReplies(ctx context.Context, parent *model.Comment) ([]*model.Reply, error) {
	return r.ReplyStore.GetReplies(parent.ID)
}

// ReplyAuthor — публичная проекция
func (r *Resolver) ReplyAuthor(ctx context.Context, parent *model.Reply) (*model.User, error) {
	return r.publicProfileByID(parent.AuthorID)
}

// ReplyComment — родительский комментарий ответа
func (r *Resolver) ReplyComment(ctx context.Context, parent *model.Reply) (*model.Comment, error) {
	return r.CommentStore.GetCommentById(parent.CommentID)
}

// AddComment — аутентифицированные пользователи
func (r *Resolver) AddComment(ctx context.Context, postID, content string) (*model.Comment, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireAuthenticated(viewer); err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, apperror.NewValidationError("content is required", nil)
	}

	return r.CommentStore.CreateComment(ctx, postID, content)
}

// AddReply — аутентифицированные пользователи
func (r *Resolver) AddReply(ctx context.Context, commentID, content string) (*model.Reply, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireAuthenticated(viewer); err != nil {
		return nil, err
	}

	if strings.TrimSpace(content) == "" {
		return nil, apperror.NewValidationError("content is required", nil)
	}

	return r.ReplyStore.CreateReply(ctx, commentID, content)
}
