package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a single diary entry.
// Collection: posts
//
// Date is the calendar day the entry is written for, normalized to local
// midnight. It is distinct from CreatedAt, which records when the entry
// was actually saved.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title     string             `bson:"title" json:"title"`
	Content   string             `bson:"content" json:"content"`
	Date      time.Time          `bson:"date" json:"date"`
	Mood      string             `bson:"mood,omitempty" json:"mood,omitempty"`
	Tags      []string           `bson:"tags" json:"tags"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// PostPatch describes a partial update. Nil fields are left untouched.
type PostPatch struct {
	Title   *string    `json:"title"`
	Content *string    `json:"content"`
	Date    *time.Time `json:"date"`
	Mood    *string    `json:"mood"`
	Tags    *[]string  `json:"tags"`
}

// IsEmpty reports whether the patch changes nothing.
func (p PostPatch) IsEmpty() bool {
	return p.Title == nil && p.Content == nil && p.Date == nil && p.Mood == nil && p.Tags == nil
}

// DayOf truncates t to local midnight of its calendar day.
func DayOf(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.Local)
}
