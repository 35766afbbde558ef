// Package memory — хранилище в памяти для локальной разработки и тестов.
// Одна общая структура с одним мьютексом: каждая операция (включая каскадное
// удаление и переключение голоса) атомарна под блокировкой.
package memory

import (
	"sync"
	"time"

	"github.com/VitaminP8/forumly/models"
)

type Database struct {
	mu sync.Mutex

	users    map[uint]*models.User
	posts    map[uint]*models.Post
	comments map[uint]*models.Comment
	replies  map[uint]*models.Reply
	// postID -> множество проголосовавших userID
	upvotes map[uint]map[uint]bool

	nextUserID    uint
	nextPostID    uint
	nextCommentID uint
	nextReplyID   uint
}

func NewDatabase() *Database {
	return &Database{
		users:         make(map[uint]*models.User),
		posts:         make(map[uint]*models.Post),
		comments:      make(map[uint]*models.Comment),
		replies:       make(map[uint]*models.Reply),
		upvotes:       make(map[uint]map[uint]bool),
		nextUserID:    1,
		nextPostID:    1,
		nextCommentID: 1,
		nextReplyID:   1,
	}
}

func stamp() time.Time {
	return time.Now().UTC()
}
