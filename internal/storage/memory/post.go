package memory

import (
	"fmt"
	"sort"
	"strconv"

	"context"

	"github.com/VitaminP8/forumly/graph/model"
	"github.com/VitaminP8/forumly/internal/apperror"
	"github.com/VitaminP8/forumly/internal/auth"
	"github.com/VitaminP8/forumly/internal/permissions"
	"github.com/VitaminP8/forumly/internal/post"
	"github.com/VitaminP8/forumly/models"
)

type PostMemoryStorage struct {
	db *Database
}

func NewPostMemoryStorage(db *Database) *PostMemoryStorage {
	return &PostMemoryStorage{db: db}
}

// Компараторы сортировки: ключ -> "меньше" для sort.SliceStable.
// Разрыв ничьих — created_at, затем id (новее раньше для *Desc).
var sortLess = map[string]func(a, b *models.Post) bool{
	post.SortDateDesc: func(a, b *models.Post) bool { return newerFirst(a, b) },
	post.SortDateAsc:  func(a, b *models.Post) bool { return newerFirst(b, a) },
	post.SortUpVotesDesc: func(a, b *models.Post) bool {
		if a.UpVotes != b.UpVotes {
			return a.UpVotes > b.UpVotes
		}
		return newerFirst(a, b)
	},
	post.SortUpVotesAsc: func(a, b *models.Post) bool {
		if a.UpVotes != b.UpVotes {
			return a.UpVotes < b.UpVotes
		}
		return newerFirst(a, b)
	},
}

func newerFirst(a, b *models.Post) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, title, description, category string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p := &models.Post{
		Title:       title,
		Description: description,
		Category:    category,
		Status:      models.DefaultPostStatus,
		UserID:      userID,
	}
	p.ID = s.db.nextPostID
	s.db.nextPostID++
	p.CreatedAt = stamp()
	p.UpdatedAt = p.CreatedAt

	s.db.posts[p.ID] = p
	s.db.upvotes[p.ID] = make(map[uint]bool)

	return model.PostFromModel(p), nil
}

func (s *PostMemoryStorage) GetPostById(id string) (*model.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, err := s.findPost(id)
	if err != nil {
		return nil, err
	}
	return model.PostFromModel(p), nil
}

func (s *PostMemoryStorage) GetAllPosts() ([]*model.Post, error) {
	return s.ListPosts("", post.SortDateDesc)
}

func (s *PostMemoryStorage) ListPosts(filter, sortKey string) ([]*model.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var posts []*models.Post
	for _, p := range s.db.posts {
		if filter != "" && p.Category != filter {
			continue
		}
		posts = append(posts, p)
	}

	s.sortPosts(posts, sortKey)

	results := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		results = append(results, model.PostFromModel(p))
	}
	return results, nil
}

func (s *PostMemoryStorage) ListPostsByStatus(status string) ([]*model.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var posts []*models.Post
	for _, p := range s.db.posts {
		if p.Status == status {
			posts = append(posts, p)
		}
	}
	s.sortPosts(posts, post.SortDateDesc)

	results := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		results = append(results, model.PostFromModel(p))
	}
	return results, nil
}

func (s *PostMemoryStorage) ListPostsByUser(userID string) ([]*model.Post, error) {
	userIDUint, err := strconv.Atoi(userID)
	if err != nil {
		return nil, apperror.NewNotFoundError("user not found", err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var posts []*models.Post
	for _, p := range s.db.posts {
		if p.UserID == uint(userIDUint) {
			posts = append(posts, p)
		}
	}
	s.sortPosts(posts, post.SortDateDesc)

	results := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		results = append(results, model.PostFromModel(p))
	}
	return results, nil
}

func (s *PostMemoryStorage) ListUpvotedPostsByUser(userID string) ([]*model.Post, error) {
	userIDUint, err := strconv.Atoi(userID)
	if err != nil {
		return nil, apperror.NewNotFoundError("user not found", err)
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	var posts []*models.Post
	for postID, voters := range s.db.upvotes {
		if voters[uint(userIDUint)] {
			if p, exists := s.db.posts[postID]; exists {
				posts = append(posts, p)
			}
		}
	}
	s.sortPosts(posts, post.SortDateDesc)

	results := make([]*model.Post, 0, len(posts))
	for _, p := range posts {
		results = append(results, model.PostFromModel(p))
	}
	return results, nil
}

func (s *PostMemoryStorage) CountPosts() (int, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return len(s.db.posts), nil
}

func (s *PostMemoryStorage) UpvoterIds(postID string) ([]string, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	var ids []uint
	for userID := range s.db.upvotes[p.ID] {
		ids = append(ids, userID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	results := make([]string, 0, len(ids))
	for _, id := range ids {
		results = append(results, fmt.Sprint(id))
	}
	return results, nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id string, input post.UpdatePostInput) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, err := s.findPost(id)
	if err != nil {
		return nil, err
	}

	err = permissions.RequireOwner(fmt.Sprint(p.UserID), fmt.Sprint(userID))
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		p.Title = *input.Title
	}
	if input.Description != nil {
		p.Description = *input.Description
	}
	if input.Category != nil {
		p.Category = *input.Category
	}
	if input.Status != nil {
		p.Status = *input.Status
	}
	p.UpdatedAt = stamp()

	return model.PostFromModel(p), nil
}

// DeletePostCascade — всё под одной блокировкой, поэтому каскад атомарен
func (s *PostMemoryStorage) DeletePostCascade(ctx context.Context, id string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, err := s.findPost(id)
	if err != nil {
		return nil, err
	}

	err = permissions.RequireOwner(fmt.Sprint(p.UserID), fmt.Sprint(userID))
	if err != nil {
		return nil, err
	}

	snapshot := model.PostFromModel(p)

	for commentID, c := range s.db.comments {
		if c.PostID != p.ID {
			continue
		}
		for replyID, r := range s.db.replies {
			if r.CommentID == commentID {
				delete(s.db.replies, replyID)
			}
		}
		delete(s.db.comments, commentID)
	}

	delete(s.db.upvotes, p.ID)
	delete(s.db.posts, p.ID)

	return snapshot, nil
}

func (s *PostMemoryStorage) ToggleUpvote(ctx context.Context, postID string) (*model.Post, error) {
	userID, err := auth.GetUserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	p, err := s.findPost(postID)
	if err != nil {
		return nil, err
	}

	voters := s.db.upvotes[p.ID]
	if voters == nil {
		voters = make(map[uint]bool)
		s.db.upvotes[p.ID] = voters
	}

	// проверка членства и мутация — одна критическая секция:
	// счетчик не может разойтись с множеством голосов
	if voters[userID] {
		delete(voters, userID)
		p.UpVotes--
	} else {
		voters[userID] = true
		p.UpVotes++
	}
	p.UpdatedAt = stamp()

	return model.PostFromModel(p), nil
}

// вызывающий держит s.db.mu
func (s *PostMemoryStorage) findPost(id string) (*models.Post, error) {
	idUint, err := strconv.Atoi(id)
	if err != nil {
		return nil, apperror.NewNotFoundError("post not found", err)
	}

	p, exists := s.db.posts[uint(idUint)]
	if !exists {
		return nil, apperror.NewNotFoundError("post not found", nil)
	}
	return p, nil
}

// вызывающий держит s.db.mu
func (s *PostMemoryStorage) sortPosts(posts []*models.Post, sortKey string) {
	less, ok := sortLess[sortKey]
	if !ok {
		switch sortKey {
		case post.SortCommentCountDesc, post.SortCommentCountAsc:
			counts := make(map[uint]int)
			for _, c := range s.db.comments {
				counts[c.PostID]++
			}
			asc := sortKey == post.SortCommentCountAsc
			less = func(a, b *models.Post) bool {
				if counts[a.ID] != counts[b.ID] {
					if asc {
						return counts[a.ID] < counts[b.ID]
					}
					return counts[a.ID] > counts[b.ID]
				}
				return newerFirst(a, b)
			}
		default:
			less = sortLess[post.SortDateDesc]
		}
	}
	sort.SliceStable(posts, func(i, j int) bool { return less(posts[i], posts[j]) })
}
