package post

import (
	"context"

	"github.com/VitaminP8/forumly/graph/model"
)

// Ключи сортировки filteredPosts. Неизвестный ключ трактуется как SortDateDesc.
const (
	SortDateDesc         = "dateDesc"
	SortDateAsc          = "dateAsc"
	SortUpVotesDesc      = "upVotesDesc"
	SortUpVotesAsc       = "upVotesAsc"
	SortCommentCountDesc = "commentCountDesc"
	SortCommentCountAsc  = "commentCountAsc"
)

// UpdatePostInput — частичное обновление поста (nil — поле не трогаем)
type UpdatePostInput struct {
	Title       *string
	Description *string
	Category    *string
	Status      *string
}

type PostStorage interface {
	CreatePost(ctx context.Context, title, description, category string) (*model.Post, error)
	GetPostById(id string) (*model.Post, error)
	GetAllPosts() ([]*model.Post, error)
	// ListPosts — filter: равенство по категории ("" — без фильтра), sort: один из Sort* ключей
	ListPosts(filter, sort string) ([]*model.Post, error)
	ListPostsByStatus(status string) ([]*model.Post, error)
	ListPostsByUser(userID string) ([]*model.Post, error)
	ListUpvotedPostsByUser(userID string) ([]*model.Post, error)
	CountPosts() (int, error)
	// UpvoterIds — id пользователей, проголосовавших за пост
	UpvoterIds(postID string) ([]string, error)
	// UpdatePost — только автор поста; NotFound, если поста нет
	UpdatePost(ctx context.Context, id string, input UpdatePostInput) (*model.Post, error)
	// DeletePostCascade — атомарно удаляет пост, его комментарии и их ответы; только автор.
	// Возвращает снапшот поста до удаления.
	DeletePostCascade(ctx context.Context, id string) (*model.Post, error)
	// ToggleUpvote — идемпотентный переключатель голоса текущего пользователя
	ToggleUpvote(ctx context.Context, postID string) (*model.Post, error)
}
