package reply

import (
	"context"

	"github.com/VitaminP8/forumly/graph/model"
)

type ReplyStorage interface {
	CreateReply(ctx context.Context, commentID, content string) (*model.Reply, error)
	GetReplies(commentID string) ([]*model.Reply, error)
}
