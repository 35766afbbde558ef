package postgres

import (
	"context"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/models"
	"github.com/jinzhu/gorm"
)

type ReplyPostgresStorage struct{}

func NewReplyPostgresStorage() *ReplyPostgresStorage {
	return &ReplyPostgresStorage{}
}

func (s *ReplyPostgresStorage) CreateReply(ctx context.Context, commentID, content string) (*model.Reply, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	commentIDUint, err := parseID(commentID)
	if err != nil {
		return nil, apperror.NewNotFoundError("comment not found", err)
	}

	var c models.Comment
	err = DB.First(&c, commentIDUint).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperror.NewNotFoundError("comment not found", err)
	}
	if err != nil {
		return nil, apperror.NewInternalError("could not get comment", err)
	}

	r := &models.Reply{
		CommentID: c.ID,
		UserID:    userID,
		Content:   content,
	}

	err = DB.Create(r).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not create reply", err)
	}

	return model.ReplyFromModel(r), nil
}

func (s *ReplyPostgresStorage) GetReplies(commentID string) ([]*model.Reply, error) {
	commentIDUint, err := parseID(commentID)
	if err != nil {
		return nil, apperror.NewNotFoundError("comment not found", err)
	}

	var replies []models.Reply
	err = DB.Where("comment_id = ?", commentIDUint).
		Order("created_at ASC, id ASC").
		Find(&replies).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not get replies", err)
	}

	results := make([]*model.Reply, 0, len(replies))
	for i := range replies {
		results = append(results, model.ReplyFromModel(&replies[i]))
	}
	return results, nil
}
