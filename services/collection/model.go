package collection

import "time"

type Collection struct {
	ID          string    `gorm:"column:id;primaryKey"`
	OwnerID     string    `gorm:"column:owner_id;index;not null"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Collection) TableName() string {
	return "collections"
}

// CollectionClip links a clip into a collection. Position is the manual sort
// order within the collection.
type CollectionClip struct {
	ID           string    `gorm:"column:id;primaryKey"`
	CollectionID string    `gorm:"column:collection_id;index;not null"`
	ClipID       string    `gorm:"column:clip_id;index;not null"`
	Position     int       `gorm:"column:position;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at"`
}

func (CollectionClip) TableName() string {
	return "collection_clips"
}
