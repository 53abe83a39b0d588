package user

import "time"

type User struct {
	ID           string    `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex"`
	DisplayName  string    `gorm:"column:display_name"`
	Avatar       string    `gorm:"column:avatar"`
	Bio          string    `gorm:"column:bio"`
	IsVerified   bool      `gorm:"column:is_verified"`
	BadgeType    string    `gorm:"column:badge_type"`
	PointBalance int64     `gorm:"column:point_balance;default:0"`
	Followers    int64     `gorm:"column:followers;default:0"`
	Following    int64     `gorm:"column:following;default:0"`
	Clips        int64     `gorm:"column:clips;default:0"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// Follow links a follower to the account they follow. The pair is unique;
// the counters on the user rows are maintained in the same transaction as
// the link.
type Follow struct {
	ID          string    `gorm:"column:id;primaryKey"`
	FollowerID  string    `gorm:"column:follower_id;uniqueIndex:idx_follower_following;not null"`
	FollowingID string    `gorm:"column:following_id;uniqueIndex:idx_follower_following;index;not null"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (Follow) TableName() string {
	return "follows"
}
