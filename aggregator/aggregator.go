package aggregator

import (
	"fmt"
	"math"

	"gorm.io/gorm"

	"bookapi/models"
)

// Aggregator maintains the derived averageRating/totalReviews fields on books.
// Those fields are a cache over the review set: Recompute rewrites them from a
// full scan, so a failed run leaves a book stale, never wrong forever.
type Aggregator struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Recompute rescans all reviews of the given book and rewrites its aggregate
// fields. A book with no reviews is reset to 0/0. Idempotent.
func (a *Aggregator) Recompute(bookID uint) error {
	var stats struct {
		Average float64
		Total   int64
	}

	err := a.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS total").
		Where("book_id = ?", bookID).
		Scan(&stats).Error
	if err != nil {
		return fmt.Errorf("aggregate reviews for book %d: %w", bookID, err)
	}

	// Round half away from zero on the first decimal digit.
	average := math.Round(stats.Average*10) / 10
	if stats.Total == 0 {
		average = 0
	}

	// Column map so zero values are written through.
	err = a.db.Model(&models.Book{}).
		Where("id = ?", bookID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_reviews":  stats.Total,
		}).Error
	if err != nil {
		return fmt.Errorf("update aggregates for book %d: %w", bookID, err)
	}

	return nil
}

// RebuildAll re-runs Recompute for every book. This is the repair path for
// aggregates left stale by a recompute failure after a review write.
func (a *Aggregator) RebuildAll() error {
	var bookIDs []uint
	if err := a.db.Model(&models.Book{}).Pluck("id", &bookIDs).Error; err != nil {
		return fmt.Errorf("list book ids: %w", err)
	}

	for _, id := range bookIDs {
		if err := a.Recompute(id); err != nil {
			return err
		}
	}
	return nil
}
