package memory

import (
	"context"
	"sort"
	"strconv"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/models"
)

type CommentMemoryStorage struct {
	db *Database
}

func NewCommentMemoryStorage(db *Database) *CommentMemoryStorage {
	return &CommentMemoryStorage{db: db}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, postID, content string) (*model.Comment, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	postIDUint, err := strconv.Atoi(postID)
	if err != nil {
		return nil, apperror.NewNotFoundError("post not found", err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.posts[uint(postIDUint)]; !exists {
		return nil, apperror.NewNotFoundError("post not found", nil)
	}

	c := &models.Comment{
		PostID:  uint(postIDUint),
		UserID:  userID,
		Content: content,
	}
	c.ID = s.db.nextCommentID
	s.db.nextCommentID++
	c.CreatedAt = stamp()
	c.UpdatedAt = c.CreatedAt

	s.db.comments[c.ID] = c
	return model.CommentFromModel(c), nil
}

func (s *CommentMemoryStorage) GetCommentById(id string) (*model.Comment, error) {
	idUint, err := strconv.Atoi(id)
	if err != nil {
		return nil, apperror.NewNotFoundError("comment not found", err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	c, exists := s.db.comments[uint(idUint)]
	if !exists {
		return nil, apperror.NewNotFoundError("comment not found", nil)
	}
	return model.CommentFromModel(c), nil
}

func (s *CommentMemoryStorage) GetComments(postID string) ([]*model.Comment, error) {
	postIDUint, err := strconv.Atoi(postID)
	if err != nil {
		return nil, apperror.NewNotFoundError("post not found", err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var comments []*models.Comment
	for _, c := range s.db.comments {
		if c.PostID == uint(postIDUint) {
			comments = append(comments, c)
		}
	}
	sort.Slice(comments, func(i, j int) bool { return comments[i].ID < comments[j].ID })

	results := make([]*model.Comment, 0, len(comments))
	for _, c := range comments {
		results = append(results, model.CommentFromModel(c))
	}
	return results, nil
}

func (s *CommentMemoryStorage) CountComments(postID string) (int, error) {
	postIDUint, err := strconv.Atoi(postID)
	if err != nil {
		return 0, apperror.NewNotFoundError("post not found", err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	count := 0
	for _, c := range s.db.comments {
		if c.PostID == uint(postIDUint) {
			count++
		}
	}
	return count, nil
}
