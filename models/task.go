package models

import "time"

// Task is a single to-do item. The id is assigned by the store on insert and
// immutable afterwards.
type Task struct {
	ID              int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string    `gorm:"type:text;not null" json:"title"`
	Description     string    `gorm:"type:text;not null" json:"description"`
	ExpiryDate      time.Time `json:"expiryDate"`
	PercentComplete int       `json:"percentComplete"`
	IsDone          bool      `json:"isDone"`
}

// GetID lets Task live in a generic repository.
func (t Task) GetID() int {
	return t.ID
}
