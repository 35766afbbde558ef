package graph

import (
	"context"
	"strconv"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/internal/permissions"
	"github.com/VitaminP8/forumly/models"
)

// CurrentUser — профиль аутентифицированного пользователя (с email)
func (r *Resolver) CurrentUser(ctx context.Context) (*model.User, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireAuthenticated(viewer); err != nil {
		return nil, err
	}

	u, err := r.UserStore.GetUserByID(viewer.UserID)
	if err != nil {
		return nil, err
	}
	return model.AsOwnerProfile(u), nil
}

// User — произвольный пользователь по id, только для ADMIN
func (r *Resolver) User(ctx context.Context, userID string) (*model.User, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireRole(viewer, models.RoleAdmin); err != nil {
		return nil, err
	}

	idUint, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}

	u, err := r.UserStore.GetUserByID(idUint)
	if err != nil {
		return nil, err
	}
	return model.AsOwnerProfile(u), nil
}

// UserPosts — посты пользователя: сам пользователь либо ADMIN
func (r *Resolver) UserPosts(ctx context.Context, parent *model.User) ([]*model.Post, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireSelfOrRole(viewer, parent.ID, models.RoleAdmin); err != nil {
		return nil, err
	}
	return r.PostStore.ListPostsByUser(parent.ID)
}

// UpvotedPosts — посты, за которые голосовал пользователь: сам либо ADMIN
func (r *Resolver) UpvotedPosts(ctx context.Context, parent *model.User) ([]*model.Post, error) {
	viewer := auth.ViewerFromContext(ctx)
	if err := permissions.RequireSelfOrRole(viewer, parent.ID, models.RoleAdmin); err != nil {
		return nil, err
	}
	return r.PostStore.ListUpvotedPostsByUser(parent.ID)
}

// publicProfileByID — автор поста/комментария/ответа в публичной проекции
func (r *Resolver) publicProfileByID(id string) (*model.User, error) {
	idUint, err := parseUserID(id)
	if err != nil {
		return nil, err
	}

	u, err := r.UserStore.GetUserByID(idUint)
	if err != nil {
		return nil, err
	}
	return model.AsPublicProfile(u), nil
}

func parseUserID(id string) (uint, error) {
	parsed, err := strconv.Atoi(id)
	if err != nil || parsed < 0 {
		return 0, apperror.NewNotFoundError("user not found", err)
	}
	return uint(parsed), nil
}
