// Package domain defines the persistence model for recipe chat records.
// The type here is mapped with GORM and forms the data layer of the
// recipe-chat application.
package domain

import "time"

// ChatRecord represents one submitted interaction: the user's input (food
// name and/or uploaded image), and the recipe text produced for it. Records
// are immutable once created; the application exposes no update or delete
// path.
//
// Fields:
//   - ID: auto-increment integer primary key, assigned by SQLite on insert.
//   - FoodName: user-entered food name, lower-cased at input time. May be
//     empty when only an image was submitted.
//   - ImageFilename: sanitized on-disk filename of the uploaded image, or
//     nil when no image was uploaded.
//   - Result: generated recipe content (HTML-ish text), or a literal
//     "Gemini API Error: ..." string when the provider call failed. Always
//     set before the row is inserted.
//   - Timestamp: insertion time, defaulted by the store.
type ChatRecord struct {
	ID            int64     `json:"id"             gorm:"primaryKey;autoIncrement"`
	FoodName      string    `json:"food_name"      gorm:"type:text;column:food_name"`
	ImageFilename *string   `json:"image_filename" gorm:"type:text;column:image_filename"`
	Result        string    `json:"result"         gorm:"type:text;not null"`
	Timestamp     time.Time `json:"timestamp"      gorm:"column:timestamp;autoCreateTime;not null"`
}

// TableName returns the database table name for ChatRecord.
func (ChatRecord) TableName() string { return "chats" }

// HasImage reports whether the record carries an uploaded image reference.
func (c ChatRecord) HasImage() bool {
	return c.ImageFilename != nil && *c.ImageFilename != ""
}
