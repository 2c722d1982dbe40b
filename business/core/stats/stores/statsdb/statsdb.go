// Package statsdb contains statistics related CRUD functionality.
package statsdb

import (
	"context"
	"fmt"
	"time"

	"github.com/zaplanje/coin/business/core/stats"
	"github.com/zaplanje/coin/business/sys/database"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordID is the id of the single statistics row.
const recordID = 1

type dbStatistics struct {
	ID          int       `gorm:"column:id;primaryKey"`
	TotalUsers  int       `gorm:"column:total_users"`
	DateUpdated time.Time `gorm:"column:date_updated"`
}

func (dbStatistics) TableName() string {
	return "statistics"
}

// Store manages the set of APIs for statistics database access.
type Store struct {
	db *gorm.DB
}

// NewStore constructs the api for data access.
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db: db,
	}
}

// Query retrieves the statistics record.
func (s *Store) Query(ctx context.Context) (stats.Statistics, error) {
	var row dbStatistics
	if err := s.db.WithContext(ctx).First(&row, recordID).Error; err != nil {
		return stats.Statistics{}, fmt.Errorf("selecting statistics: %w", database.TranslateError(err))
	}

	return stats.Statistics{TotalUsers: row.TotalUsers, DateUpdated: row.DateUpdated}, nil
}

// IncrementUsers adds one to total_users in a single statement, creating
// the record when it is missing.
func (s *Store) IncrementUsers(ctx context.Context, now time.Time) (stats.Statistics, error) {
	row := dbStatistics{
		ID:          recordID,
		TotalUsers:  1,
		DateUpdated: now,
	}

	err := s.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "id"}},
				DoUpdates: clause.Assignments(map[string]any{
					"total_users":  gorm.Expr("statistics.total_users + 1"),
					"date_updated": now,
				}),
			},
			clause.Returning{},
		).
		Create(&row).Error
	if err != nil {
		return stats.Statistics{}, fmt.Errorf("incrementing total_users: %w", database.TranslateError(err))
	}

	return stats.Statistics{TotalUsers: row.TotalUsers, DateUpdated: row.DateUpdated}, nil
}
