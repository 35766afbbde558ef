package postgres

import (
	"context"
	"fmt"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/internal/permissions"
	"github.com/VitaminP8/forumly/internal/post"
	"github.com/VitaminP8/forumly/models"
	"github.com/jinzhu/gorm"
)

type PostPostgresStorage struct{}

func NewPostPostgresStorage() *PostPostgresStorage {
	return &PostPostgresStorage{}
}

// Таблица сортировок filteredPosts: ключ -> ORDER BY.
// Хвост created_at/id — стабильный разрыв ничьих.
// Подзапрос COUNT не учитывает мягко удаленные комментарии.
var sortOrders = map[string]string{
	post.SortDateDesc:    "created_at DESC, id DESC",
	post.SortDateAsc:     "created_at ASC, id ASC",
	post.SortUpVotesDesc: "up_votes DESC, created_at DESC, id DESC",
	post.SortUpVotesAsc:  "up_votes ASC, created_at DESC, id DESC",
	post.SortCommentCountDesc: "(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) DESC, created_at DESC, id DESC",
	post.SortCommentCountAsc:  "(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id AND comments.deleted_at IS NULL) ASC, created_at DESC, id DESC",
}

func (s *PostPostgresStorage) CreatePost(ctx context.Context, title, description, category string) (*model.Post, error) {
	// авторство всегда из контекста запроса, никогда из данных клиента
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p := &models.Post{
		Title:       title,
		Description: description,
		Category:    category,
		Status:      models.DefaultPostStatus,
		UserID:      userID,
	}

	err = DB.Create(p).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not create post", err)
	}

	return model.PostFromModel(p), nil
}

func (s *PostPostgresStorage) GetPostById(id string) (*model.Post, error) {
	p, err := s.findPost(DB, id)
	if err != nil {
		return nil, err
	}
	return model.PostFromModel(p), nil
}

func (s *PostPostgresStorage) GetAllPosts() ([]*model.Post, error) {
	var posts []models.Post
	err := DB.Order(sortOrders[post.SortDateDesc]).Find(&posts).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not get posts", err)
	}
	return toModelPosts(posts), nil
}

func (s *PostPostgresStorage) ListPosts(filter, sort string) ([]*model.Post, error) {
	order, ok := sortOrders[sort]
	if !ok {
		// неизвестный или пустой ключ — сортировка по умолчанию
		order = sortOrders[post.SortDateDesc]
	}

	query := DB.Order(order)
	if filter != "" {
		query = query.Where("category = ?", filter)
	}

	var posts []models.Post
	err := query.Find(&posts).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not get filtered posts", err)
	}
	return toModelPosts(posts), nil
}

func (s *PostPostgresStorage) ListPostsByStatus(status string) ([]*model.Post, error) {
	var posts []models.Post
	err := DB.Where("status = ?", status).Order(sortOrders[post.SortDateDesc]).Find(&posts).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not get posts by status", err)
	}
	return toModelPosts(posts), nil
}

func (s *PostPostgresStorage) ListPostsByUser(userID string) ([]*model.Post, error) {
	userIDUint, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	err = DB.Where("user_id = ?", userIDUint).Order(sortOrders[post.SortDateDesc]).Find(&posts).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not get user posts", err)
	}
	return toModelPosts(posts), nil
}

func (s *PostPostgresStorage) ListUpvotedPostsByUser(userID string) ([]*model.Post, error) {
	userIDUint, err := parseID(userID)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	err = DB.
		Joins("JOIN post_upvotes ON post_upvotes.post_id = posts.id").
		Where("post_upvotes.user_id = ?", userIDUint).
		Order("posts.created_at DESC, posts.id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not get upvoted posts", err)
	}
	return toModelPosts(posts), nil
}

func (s *PostPostgresStorage) CountPosts() (int, error) {
	var count int
	err := DB.Model(&models.Post{}).Count(&count).Error
	if err != nil {
		return 0, apperror.NewInternalError("could not count posts", err)
	}
	return count, nil
}

func (s *PostPostgresStorage) UpvoterIds(postID string) ([]string, error) {
	p, err := s.findPost(DB, postID)
	if err != nil {
		return nil, err
	}

	var userIDs []uint
	err = DB.Table("post_upvotes").Where("post_id = ?", p.ID).Pluck("user_id", &userIDs).Error
	if err != nil {
		return nil, apperror.NewInternalError("could not get upvoter list", err)
	}

	ids := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		ids = append(ids, fmt.Sprint(id))
	}
	return ids, nil
}

func (s *PostPostgresStorage) UpdatePost(ctx context.Context, id string, input post.UpdatePostInput) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.findPost(DB, id)
	if err != nil {
		return nil, err
	}

	// проверка владельца до любой записи
	err = permissions.RequireOwner(fmt.Sprint(p.UserID), fmt.Sprint(userID))
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Status != nil {
		updates["status"] = *input.Status
	}

	if len(updates) > 0 {
		err = DB.Model(p).Updates(updates).Error
		if err != nil {
			return nil, apperror.NewInternalError("could not update post", err)
		}
	}

	return model.PostFromModel(p), nil
}

// DeletePostCascade удаляет пост вместе с комментариями и их ответами одной транзакцией.
// Любая ошибка на любом шаге откатывает всё: частичный каскад наружу не виден.
func (s *PostPostgresStorage) DeletePostCascade(ctx context.Context, id string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return nil, apperror.NewInternalError("could not begin transaction", tx.Error)
	}

	p, err := s.findPost(tx, id)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	err = permissions.RequireOwner(fmt.Sprint(p.UserID), fmt.Sprint(userID))
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	// снапшот до удаления — его и возвращаем
	snapshot := model.PostFromModel(p)

	var commentIDs []uint
	err = tx.Model(&models.Comment{}).Where("post_id = ?", p.ID).Pluck("id", &commentIDs).Error
	if err != nil {
		tx.Rollback()
		return nil, apperror.NewInternalError("could not collect comment ids", err)
	}

	if len(commentIDs) > 0 {
		err = tx.Where("comment_id IN (?)", commentIDs).Delete(&models.Reply{}).Error
		if err != nil {
			tx.Rollback()
			return nil, apperror.NewInternalError("could not delete replies", err)
		}
	}

	err = tx.Where("post_id = ?", p.ID).Delete(&models.Comment{}).Error
	if err != nil {
		tx.Rollback()
		return nil, apperror.NewInternalError("could not delete comments", err)
	}

	err = tx.Exec("DELETE FROM post_upvotes WHERE post_id = ?", p.ID).Error
	if err != nil {
		tx.Rollback()
		return nil, apperror.NewInternalError("could not delete upvotes", err)
	}

	err = tx.Delete(&models.Post{}, p.ID).Error
	if err != nil {
		tx.Rollback()
		return nil, apperror.NewInternalError("could not delete post", err)
	}

	err = tx.Commit().Error
	if err != nil {
		return nil, apperror.NewInternalError("could not commit cascade delete", err)
	}

	return snapshot, nil
}

// ToggleUpvote — идемпотентный переключатель голоса.
// Членство проверяется условным DELETE по (post_id, user_id): ноль затронутых
// строк означает "голоса не было". Конкурентный повторный INSERT того же
// пользователя отсекается составным первичным ключом таблицы связи, счетчик
// меняется SQL-выражением, поэтому up_votes не расходится с множеством голосов.
func (s *PostPostgresStorage) ToggleUpvote(ctx context.Context, postID string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	tx := DB.Begin()
	if tx.Error != nil {
		return nil, apperror.NewInternalError("could not begin transaction", tx.Error)
	}

	p, err := s.findPost(tx, postID)
	if err != nil {
		tx.Rollback()
		return nil, err
	}

	res := tx.Exec("DELETE FROM post_upvotes WHERE post_id = ? AND user_id = ?", p.ID, userID)
	if res.Error != nil {
		tx.Rollback()
		return nil, apperror.NewInternalError("could not toggle upvote", res.Error)
	}

	if res.RowsAffected > 0 {
		err = tx.Model(&models.Post{}).Where("id = ?", p.ID).
			Update("up_votes", gorm.Expr("up_votes - 1")).Error
	} else {
		err = tx.Exec("INSERT INTO post_upvotes (post_id, user_id) VALUES (?, ?)", p.ID, userID).Error
		if err == nil {
			err = tx.Model(&models.Post{}).Where("id = ?", p.ID).
				Update("up_votes", gorm.Expr("up_votes + 1")).Error
		}
	}
	if err != nil {
		tx.Rollback()
		return nil, apperror.NewInternalError("could not toggle upvote", err)
	}

	err = tx.Commit().Error
	if err != nil {
		return nil, apperror.NewInternalError("could not commit upvote toggle", err)
	}

	updated, err := s.findPost(DB, postID)
	if err != nil {
		return nil, err
	}
	return model.PostFromModel(updated), nil
}

func (s *PostPostgresStorage) findPost(db *gorm.DB, id string) (*models.Post, error) {
	idUint, err := parseID(id)
	if err != nil {
		return nil, apperror.NewNotFoundError("post not found", err)
	}

	var p models.Post
	err = db.First(&p, idUint).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, apperror.NewNotFoundError("post not found", err)
	}
	if err != nil {
		return nil, apperror.NewInternalError("could not get post by id", err)
	}
	return &p, nil
}

func toModelPosts(posts []models.Post) []*model.Post {
	results := make([]*model.Post, 0, len(posts))
	for i := range posts {
		results = append(results, model.PostFromModel(&posts[i]))
	}
	return results
}
