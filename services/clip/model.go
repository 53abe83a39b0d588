package clip

import "time"

type Visibility string

const (
	VisibilityPublic   Visibility = "public"
	VisibilityUnlisted Visibility = "unlisted"
	VisibilityPrivate  Visibility = "private"
)

func (v Visibility) Valid() bool {
	switch v {
	case VisibilityPublic, VisibilityUnlisted, VisibilityPrivate:
		return true
	default:
		return false
	}
}

type Clip struct {
	ID           string     `gorm:"column:id;primaryKey"`
	OwnerID      string     `gorm:"column:owner_id;index;not null"`
	Title        string     `gorm:"column:title;not null"`
	URL          string     `gorm:"column:url;not null"`
	ThumbnailURL string     `gorm:"column:thumbnail_url"`
	Duration     int64      `gorm:"column:duration"`
	Source       string     `gorm:"column:source"`
	GameTag      string     `gorm:"column:game_tag;index"`
	Visibility   Visibility `gorm:"column:visibility;type:varchar(16);default:'public'"`
	ViewCount    int64      `gorm:"column:view_count;default:0"`
	IsArchived   bool       `gorm:"column:is_archived"`
	IsPinned     bool       `gorm:"column:is_pinned"`
	CreatedAt    time.Time  `gorm:"column:created_at;index"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	ExpiresAt    *time.Time `gorm:"column:expires_at"`
}

func (Clip) TableName() string {
	return "clips"
}
