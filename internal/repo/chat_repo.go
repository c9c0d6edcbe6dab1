// Package repo implements the data persistence layer for chat records,
// backed by GORM. This file provides repository functions for the ChatRecord
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only
// persistence and query composition. There are deliberately no update or
// delete functions — chat records are immutable once inserted.
//
// Error semantics:
//   - When a record is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/foodlens/recipe-chat/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// InsertChat persists a new chat record and returns it with the assigned
// auto-increment id. imageFilename is nil when no image was uploaded.
// The timestamp column is populated by GORM at insert time.
func InsertChat(ctx context.Context, db *gorm.DB, foodName string, imageFilename *string, result string) (*domain.ChatRecord, error) {
	c := &domain.ChatRecord{
		FoodName:      foodName,
		ImageFilename: imageFilename,
		Result:        result,
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		return nil, err
	}
	return c, nil
}

// GetChat fetches a single record by its id. If the record does not exist,
// it returns ErrNotFound. On other DB errors, the raw error is returned.
func GetChat(ctx context.Context, db *gorm.DB, id int64) (*domain.ChatRecord, error) {
	var c domain.ChatRecord
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListChats returns all chat records ordered by id descending (most recent
// first). It returns an empty slice when no records exist.
func ListChats(ctx context.Context, db *gorm.DB) ([]domain.ChatRecord, error) {
	var out []domain.ChatRecord
	err := db.WithContext(ctx).
		Order("id desc").
		Find(&out).Error
	return out, err
}

// CountChats returns the total number of chat records.
func CountChats(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.ChatRecord{}).
		Count(&total).Error
	return total, err
}

// ListChatsPage returns a paginated slice of chat records ordered by id
// descending. Use CountChats to obtain the total for pagination metadata.
//
// The caller is responsible for computing offset and limit (e.g., (page-1)*pageSize).
func ListChatsPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ChatRecord, error) {
	var out []domain.ChatRecord
	err := db.WithContext(ctx).
		Order("id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
