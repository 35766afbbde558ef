package graph

import (
	"github.com/VitaminP8/forumly/internal/comment"
	"github.com/VitaminP8/forumly/internal/post"
	"github.com/VitaminP8/forumly/internal/reply"
	"github.com/VitaminP8/forumly/internal/user"
)

// Resolver служит корневой точкой для всех резолверов.
// Здесь внедряются зависимости — хранилища сущностей.
type Resolver struct {
	PostStore    post.PostStorage
	CommentStore comment.CommentStorage
	ReplyStore   reply.ReplyStorage
	UserStore    user.UserStorage
}
