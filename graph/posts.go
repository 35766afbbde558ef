package graph

import (
	"context"
	"strings"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/internal/permissions"
	"github.com/VitaminP8/forumly/internal/post"
	"github.com/VitaminP8/forumly/models"
)

// Post — открытое чтение
func (r *Resolver) Post(ctx context.Context, postID string) (*model.Post, error) {
	return r.PostStore.GetPostById(postID)
}

// Posts — открытое чтение
func (r *Resolver) Posts(ctx context.Context) ([]*model.Post, error) {
	return r.PostStore.GetAllPosts()
}

// FilteredPosts — открытое чтение с фильтром по категории и сортировкой
func (r *Resolver) FilteredPosts(ctx context.Context, filter, sort string) ([]*model.Post, error) {
	return r.PostStore.ListPosts(filter, sort)
}

// PostsByStatus — открытое чтение
func (r *Resolver) PostsByStatus(ctx context.Context, status string) ([]*model.Post, error) {
	return r.PostStore.ListPostsByStatus(status)
}

// PostCount — открытое чтение
func (r *Resolver) PostCount(ctx context.Context) (int, error) {
	return r.PostStore.CountPosts()
}

// PostAuthor — автор поста в публичной проекции (email скрыт)
func (r *Resolver) PostAuthor(ctx context.Context, parent *model.Post) (*model.User, error) {
	return r.publicProfileByID(parent.AuthorID)
}

// PostComments — открытое чтение
func (r *Resolver) PostComments(ctx context.Context, parent *model.Post) ([]*model.Comment, error) {
	return r.CommentStore.GetComments(parent.ID)
}

// PostCommentCount — открытое чтение
func (r *Resolver) PostCommentCount(ctx context.Context, parent *model.Post) (int, error) {
	return r.CommentStore.CountComments(parent.ID)
}

// PostUpvoterList — список проголосовавших, только для ADMIN
func (r *Resolver) PostUpvoterList(ctx context.Context, parent *model.Post) ([]*model.User, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireRole(viewer, models.RoleAdmin); err != nil {
		return nil, err
	}

	ids, err := r.PostStore.UpvoterIds(parent.ID)
	if err != nil {
		return nil, err
	}

	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		idUint, err := parseUserID(id)
		if err != nil {
			return nil, err
		}
		u, err := r.UserStore.GetUserByID(idUint)
		if err != nil {
			return nil, err
		}
		users = append(users, model.AsOwnerProfile(u))
	}
	return users, nil
}

// AddPost — аутентифицированные пользователи; автор берется из контекста
func (r *Resolver) AddPost(ctx context.Context, title, description, category string) (*model.Post, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireAuthenticated(viewer); err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" {
		return nil, apperror.NewValidationError("title is required", nil)
	}

	return r.PostStore.CreatePost(ctx, title, description, category)
}

// UpdatePost — только автор поста (проверка владельца в хранилище, до записи)
func (r *Resolver) UpdatePost(ctx context.Context, postID string, input post.UpdatePostInput) (*model.Post, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireAuthenticated(viewer); err != nil {
		return nil, err
	}

	return r.PostStore.UpdatePost(ctx, postID, input)
}

// DeletePost — только автор; пост удаляется каскадно вместе с комментариями и ответами
func (r *Resolver) DeletePost(ctx context.Context, postID string) (*model.Post, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireAuthenticated(viewer); err != nil {
		return nil, err
	}

	return r.PostStore.DeletePostCascade(ctx, postID)
}

// ToggleUpVote — идемпотентный переключатель голоса текущего пользователя
func (r *Resolver) ToggleUpVote(ctx context.Context, postID string) (*model.Post, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireAuthenticated(viewer); err != nil {
		return nil, err
	}

	return r.PostStore.ToggleUpvote(ctx, postID)
}
