package models

import "time"

// ViewBucket counts views for one target on one UTC calendar day. The
// composite unique index makes concurrent RecordView calls collapse into a
// single atomic upsert per (target, day); rows older than the retention
// window are swept by the purge job.
type ViewBucket struct {
	BucketID   int64     `gorm:"primaryKey;column:bucket_id" json:"bucket_id"`
	TargetType string    `gorm:"column:target_type;uniqueIndex:uq_view_buckets_target_day" json:"target_type"`
	TargetID   int       `gorm:"column:target_id;uniqueIndex:uq_view_buckets_target_day" json:"target_id"`
	ViewDate   string    `gorm:"column:view_date;size:10;uniqueIndex:uq_view_buckets_target_day" json:"view_date"` // YYYY-MM-DD, UTC
	Count      int64     `gorm:"column:count;default:0" json:"count"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name for ViewBucket.
func (ViewBucket) TableName() string {
	return "view_buckets"
}
