package model

import (
	"time"

	"github.com/google/uuid"
)

// Category rows carry two per-owner composite unique indexes. The indexes
// are the storage-level backstop for the slug allocator: the in-process
// check-then-insert is only safe because a concurrent duplicate ultimately
// violates idx_categories_owner_slug.
type Category struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_owner_name"`
	Slug      string    `gorm:"type:varchar(150);not null;uniqueIndex:idx_categories_owner_slug"`
	Color     string    `gorm:"type:char(7);not null"`
	UserId    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_categories_owner_name;uniqueIndex:idx_categories_owner_slug"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Category) TableName() string {
	return "categories"
}
