package postgres

import (
	"context"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/models"
	"github.com/jinzhu/gorm"
)

type CommentPostgresStorage struct{}

func NewCommentPostgresStorage() *CommentPostgresStorage {
	return &CommentPostgresStorage{}
}

func (s *CommentPostgresStorage) CreateComment(ctx context.Context, postID, content string) (*model.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	postIDUint, err := parseID(postID)
	if err != nil {
		return nil, apperror.NewNotFoundError("post not found", err)
	}

	var p models.Post
	err = DB.First(&p, postIDUint).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperror.NewNotFoundError("post not found", err)
	}
	if err != nil {
		return nil, apperror.NewInternalError("could not get post", err)
	}

	c := &models.Comment{
		PostID:  p.ID,
		UserID:  userID,
		Content: content,
	}

	err = DB.Create(c).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not create comment", err)
	}

	return model.CommentFromModel(c), nil
}

func (s *CommentPostgresStorage) GetCommentById(id string) (*model.Comment, error) {
	idUint, err := parseID(id)
	if err != nil {
		return nil, apperror.NewNotFoundError("comment not found", err)
	}

	var c models.Comment
	err = DB.First(&c, idUint).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperror.NewNotFoundError("comment not found", err)
	}
	if err != nil {
		return nil, apperror.NewInternalError("could not get comment by id", err)
	}

	return model.CommentFromModel(&c), nil
}

func (s *CommentPostgresStorage) GetComments(postID string) ([]*model.Comment, error) {
	postIDUint, err := parseID(postID)
	if err != nil {
		return nil, apperror.NewNotFoundError("post not found", err)
	}

	var comments []models.Comment
	err = DB.Where("post_id = ?", postIDUint).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not get comments", err)
	}

	results := make([]*model.Comment, 0, len(comments))
	for i := range comments {
		results = append(results, model.CommentFromModel(&comments[i]))
	}
	return results, nil
}

func (s *CommentPostgresStorage) CountComments(postID string) (int, error) {
	postIDUint, err := parseID(postID)
	if err != nil {
		return 0, apperror.NewNotFoundError("post not found", err)
	}

	var count int
	err = DB.Model(&models.Comment{}).Where("post_id = ?", postIDUint).Count(&count).Error
	if err != nil {
		return 0, apperror.NewInternalError("could not count comments", err)
	}
	return count, nil
}
