package badge

import "time"

// Badge records a self-declared badge request. Issuance is immediate: there
// is no pending or rejected state, and holding a badge does not flip the
// owner's is_verified flag — that stays with moderation tooling.
type Badge struct {
	ID        string    `gorm:"column:id;primaryKey"`
	UserID    string    `gorm:"column:user_id;index;not null"`
	BadgeType string    `gorm:"column:badge_type;not null"`
	IssuedAt  time.Time `gorm:"column:issued_at"`
}

func (Badge) TableName() string {
	return "badges"
}
