package models

import "gorm.io/gorm"

// ForumCategory gates access per role tier: each permission field holds the
// minimum role (user/moderator/admin) required for that action.
type ForumCategory struct {
	gorm.Model
	Name        string `gorm:"unique;not null"`
	Description string `gorm:"default:''"`
	OrderIndex  int    `gorm:"default:0"`

	ViewRole   string `gorm:"default:'user'"`
	CreateRole string `gorm:"default:'user'"`
	ReplyRole  string `gorm:"default:'user'"`

	Posts []ForumPost `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE"`
}

// CanView reports whether a role tier satisfies the category's view gate.
func (c *ForumCategory) CanView(role string) bool   { return RoleLevel(role) >= RoleLevel(c.ViewRole) }
func (c *ForumCategory) CanCreate(role string) bool { return RoleLevel(role) >= RoleLevel(c.CreateRole) }
func (c *ForumCategory) CanReply(role string) bool  { return RoleLevel(role) >= RoleLevel(c.ReplyRole) }

// ForumPost belongs to exactly one category. Pinned posts sort first; locked
// posts reject new replies (same guard shape as closed tickets).
type ForumPost struct {
	gorm.Model
	CategoryID uint   `gorm:"index;not null"`
	AuthorID   uint   `gorm:"index;not null"`
	Title      string `gorm:"not null"`
	Content    string `gorm:"type:text;not null"`
	Pinned     bool   `gorm:"default:false"`
	Locked     bool   `gorm:"default:false"`

	Replies []ForumReply `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

type ForumReply struct {
	gorm.Model
	PostID   uint   `gorm:"index;not null"`
	AuthorID uint   `gorm:"index;not null"`
	Content  string `gorm:"type:text;not null"`
}
