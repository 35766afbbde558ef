package comment

import (
	"context"

	"github.com/VitaminP8/forumly/graph/model"
)

type CommentStorage interface {
	CreateComment(ctx context.Context, postID, content string) (*model.Comment, error)
	GetCommentById(id string) (*model.Comment, error)
	GetComments(postID string) ([]*model.Comment, error)
	CountComments(postID string) (int, error)
}
