package services

import (
	"context"
	"fmt"
	"time"

	"editorial-content-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	// TargetTypeSubmission is the only view target the platform counts today.
	TargetTypeSubmission = "submission"

	// DefaultTrendingWindowDays is the rolling window used when the caller
	// does not ask for one.
	DefaultTrendingWindowDays = 7

	// DefaultBucketRetentionDays is how long daily view buckets are kept
	// before the purge job forgets them. Lifetime counts are unaffected.
	DefaultBucketRetentionDays = 30

	bucketDateLayout = "2006-01-02"
)

// ViewService records view events and ranks targets by recent view velocity.
type ViewService struct {
	db *gorm.DB
}

// NewViewService creates a view service on the given database.
func NewViewService(db *gorm.DB) *ViewService {
	return &ViewService{db: db}
}

// RecordView logs one view: the target's lifetime counter and today's UTC
// bucket are both bumped with storage-level atomic increments, so concurrent
// views never lose updates.
func (s *ViewService) RecordView(ctx context.Context, targetType string, targetID int) error {
	if targetType != TargetTypeSubmission {
		return newValidationError("unrecognized view target type %q", targetType)
	}

	now := time.Now().UTC()
	day := now.Format(bucketDateLayout)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Submission{}).
			Where("submission_id = ? AND deleted_at IS NULL", targetID).
			UpdateColumn("view_count", gorm.Expr("view_count + 1"))
		if result.Error != nil {
			return fmt.Errorf("failed to increment view count: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrSubmissionNotFound
		}

		bucket := models.ViewBucket{
			TargetType: targetType,
			TargetID:   targetID,
			ViewDate:   day,
			Count:      1,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "target_type"},
				{Name: "target_id"},
				{Name: "view_date"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"count":      gorm.Expr("count + 1"),
				"updated_at": now,
			}),
		}).Create(&bucket).Error
		if err != nil {
			return fmt.Errorf("failed to upsert view bucket: %w", err)
		}
		return nil
	})
}

// TrendingEntry is one ranked target.
type TrendingEntry struct {
	TargetID      int    `json:"target_id"`
	Title         string `json:"title"`
	WindowViews   int64  `json:"window_views"`
	LifetimeViews int64  `json:"lifetime_views"`
}

// TrendingResult carries the ranking plus which source produced it:
// "window" for the bucket aggregation, "lifetime" for the fallback.
type TrendingResult struct {
	Source     string          `json:"source"`
	WindowDays int             `json:"window_days"`
	Entries    []TrendingEntry `json:"entries"`
}

// Rank orders targets by view count over the trailing windowDays calendar
// days (inclusive of today), ties broken by lifetime views. When no bucket
// falls inside the window the ranking deliberately falls back to lifetime
// view counts rather than returning an empty list; the result's Source field
// tells the caller which path was taken.
func (s *ViewService) Rank(ctx context.Context, targetType string, windowDays, limit int) (*TrendingResult, error) {
	if targetType != TargetTypeSubmission {
		return nil, newValidationError("unrecognized view target type %q", targetType)
	}
	if windowDays <= 0 {
		windowDays = DefaultTrendingWindowDays
	}
	if limit <= 0 {
		limit = 10
	}

	since := time.Now().UTC().AddDate(0, 0, -(windowDays - 1)).Format(bucketDateLayout)

	var entries []TrendingEntry
	err := s.db.WithContext(ctx).Raw(`
		SELECT vb.target_id AS target_id,
		       s.title AS title,
		       SUM(vb.count) AS window_views,
		       s.view_count AS lifetime_views
		FROM view_buckets vb
		JOIN submissions s ON s.submission_id = vb.target_id
		WHERE vb.target_type = ?
		  AND vb.view_date >= ?
		  AND s.deleted_at IS NULL
		GROUP BY vb.target_id, s.title, s.view_count
		ORDER BY window_views DESC, lifetime_views DESC
		LIMIT ?`, targetType, since, limit).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate view buckets: %w", err)
	}

	if len(entries) > 0 {
		return &TrendingResult{Source: "window", WindowDays: windowDays, Entries: entries}, nil
	}

	err = s.db.WithContext(ctx).Raw(`
		SELECT submission_id AS target_id,
		       title AS title,
		       0 AS window_views,
		       view_count AS lifetime_views
		FROM submissions
		WHERE deleted_at IS NULL
		ORDER BY view_count DESC, submission_id ASC
		LIMIT ?`, limit).Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to rank by lifetime views: %w", err)
	}

	return &TrendingResult{Source: "lifetime", WindowDays: windowDays, Entries: entries}, nil
}

// PurgeExpiredBuckets deletes buckets older than the retention window and
// returns how many rows were removed.
func (s *ViewService) PurgeExpiredBuckets(ctx context.Context, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		retentionDays = DefaultBucketRetentionDays
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays).Format(bucketDateLayout)

	result := s.db.WithContext(ctx).
		Where("view_date < ?", cutoff).
		Delete(&models.ViewBucket{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge view buckets: %w", result.Error)
	}
	return result.RowsAffected, nil
}
