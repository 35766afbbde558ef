package models

import "github.com/jinzhu/gorm"

// Уровни доступа пользователя.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Статус поста — свободная строка (набор значений не зафиксирован продуктом).
const DefaultPostStatus = "draft"

type User struct {
	gorm.Model
	Email      string `gorm:"unique;not null"`
	Password   string // bcrypt-хеш, наружу не отдается
	Firstname  string
	Lastname   string
	ProfileImg string
	Role       string `gorm:"not null;default:'USER'"`
	Posts      []Post    `gorm:"foreignkey:UserID"`
	Comments   []Comment `gorm:"foreignkey:UserID"`
	Replies    []Reply   `gorm:"foreignkey:UserID"`
	// посты, за которые пользователь проголосовал
	UpvotedPosts []Post `gorm:"many2many:post_upvotes;"`
}

type Post struct {
	gorm.Model
	Title       string `gorm:"not null"`
	Description string
	Category    string
	Status      string `gorm:"not null;default:'draft'"`
	UpVotes     int    `gorm:"not null;default:0"`
	UserID      uint
	Comments    []Comment `gorm:"foreignkey:PostID"`
	Upvoters    []User    `gorm:"many2many:post_upvotes;"`
}

type Comment struct {
	gorm.Model
	Content string `gorm:"not null"`
	PostID  uint
	UserID  uint
	Replies []Reply `gorm:"foreignkey:CommentID"`
}

type Reply struct {
	gorm.Model
	Content   string `gorm:"not null"`
	CommentID uint
	UserID    uint
}
