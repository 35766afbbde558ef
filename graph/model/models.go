// Package model — типы, пересекающие границу GraphQL API.
// Пароль и роль пользователя в этих типах отсутствуют и наружу не попадают.
package model

import (
	"fmt"
	"time"

	"github.com/VitaminP8/forumly/models"
)

type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Firstname  string `json:"firstname"`
	Lastname   string `json:"lastname"`
	ProfileImg string `json:"profileImg"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

type Post struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	UpVotes     int    `json:"upVotes"`
	AuthorID    string `json:"authorId"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

type Comment struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	AuthorID  string `json:"authorId"`
	PostID    string `json:"postId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Reply struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	AuthorID  string `json:"authorId"`
	CommentID string `json:"commentId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

// AsPublicProfile — проекция пользователя для чужих глаз: email скрыт.
// Единое правило вместо прежней непоследовательной редакции поля.
func AsPublicProfile(u *models.User) *User {
	return &User{
		ID:         fmt.Sprint(u.ID),
		Firstname:  u.Firstname,
		Lastname:   u.Lastname,
		ProfileImg: u.ProfileImg,
		CreatedAt:  formatTime(u.CreatedAt),
		UpdatedAt:  formatTime(u.UpdatedAt),
	}
}

// AsOwnerProfile — проекция для самого пользователя или администратора: с email
func AsOwnerProfile(u *models.User) *User {
	profile := AsPublicProfile(u)
	profile.Email = u.Email
	return profile
}

func PostFromModel(p *models.Post) *Post {
	return &Post{
		ID:          fmt.Sprint(p.ID),
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		Status:      p.Status,
		UpVotes:     p.UpVotes,
		AuthorID:    fmt.Sprint(p.UserID),
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func CommentFromModel(c *models.Comment) *Comment {
	return &Comment{
		ID:        fmt.Sprint(c.ID),
		Content:   c.Content,
		AuthorID:  fmt.Sprint(c.UserID),
		PostID:    fmt.Sprint(c.PostID),
		CreatedAt: formatTime(c.CreatedAt),
		UpdatedAt: formatTime(c.UpdatedAt),
	}
}

func ReplyFromModel(r *models.Reply) *Reply {
	return &Reply{
		ID:        fmt.Sprint(r.ID),
		Content:   r.Content,
		AuthorID:  fmt.Sprint(r.UserID),
		CommentID: fmt.Sprint(r.CommentID),
		CreatedAt: formatTime(r.CreatedAt),
		UpdatedAt: formatTime(r.UpdatedAt),
	}
}
