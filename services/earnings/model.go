package earnings

import (
	"time"

	"gorm.io/datatypes"
)

// Recognized view sources. RecordView rejects anything else.
const (
	SourceClipView       = "clip_view"
	SourceCollectionView = "collection_view"
)

// rates maps (source type, owner verified) to the points granted per view.
// Verified owners earn double.
var rates = map[string]map[bool]int64{
	SourceClipView:       {true: 2, false: 1},
	SourceCollectionView: {true: 2, false: 1},
}

// AmountFor returns the credit granted for one view of the given source type.
// The second return is false for unrecognized source types.
func AmountFor(sourceType string, verified bool) (int64, bool) {
	bySource, ok := rates[sourceType]
	if !ok {
		return 0, false
	}
	return bySource[verified], true
}

// Earning is one append-only ledger row. Rows are never updated or deleted;
// the owner's cached point balance is the running sum of their rows.
type Earning struct {
	ID         string         `gorm:"column:id;primaryKey"`
	UserID     string         `gorm:"column:user_id;index;not null"`
	Amount     int64          `gorm:"column:amount;not null"`
	SourceType string         `gorm:"column:source_type;type:varchar(32);not null"`
	SourceID   string         `gorm:"column:source_id;index;not null"`
	Metadata   datatypes.JSON `gorm:"column:metadata"`
	CreatedAt  time.Time      `gorm:"column:created_at;index"`
}

func (Earning) TableName() string {
	return "earnings"
}
