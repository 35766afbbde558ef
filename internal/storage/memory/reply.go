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

type ReplyMemoryStorage struct {
	db *Database
}

func NewReplyMemoryStorage(db *Database) *ReplyMemoryStorage {
	return &ReplyMemoryStorage{db: db}
}

func (s *ReplyMemoryStorage) CreateReply(ctx context.Context, commentID, content string) (*model.Reply, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	commentIDUint, err := strconv.Atoi(commentID)
	if err != nil {
		return nil, apperror.NewNotFoundError("comment not found", err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, exists := s.db.comments[uint(commentIDUint)]; !exists {
		return nil, apperror.NewNotFoundError("comment not found", nil)
	}

	r := &models.Reply{
		CommentID: uint(commentIDUint),
		UserID:    userID,
		Content:   content,
	}
	r.ID = s.db.nextReplyID
	s.db.nextReplyID++
	r.CreatedAt = stamp()
	r.UpdatedAt = r.CreatedAt

	s.db.replies[r.ID] = r
	return model.ReplyFromModel(r), nil
}

func (s *ReplyMemoryStorage) GetReplies(commentID string) ([]*model.Reply, error) {
	commentIDUint, err := strconv.Atoi(commentID)
	if err != nil {
		return nil, apperror.NewNotFoundError("comment not found", err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var replies []*models.Reply
	for _, r := range s.db.replies {
		if r.CommentID == uint(commentIDUint) {
			replies = append(replies, r)
		}
	}
	sort.Slice(replies, func(i, j int) bool { return replies[i].ID < replies[j].ID })

	results := make([]*model.Reply, 0, len(replies))
	for _, r := range replies {
		results = append(results, model.ReplyFromModel(r))
	}
	return results, nil
}
