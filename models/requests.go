package models

import "time"

// CreateTaskRequest is the payload for creating a task. Percent and done
// state are never taken from the client; a new task always starts at zero.
type CreateTaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	ExpiryDate  time.Time `json:"expiryDate" binding:"required"`
}

// UpdateTaskRequest carries the replaceable fields for a full update.
// percentComplete and isDone are only changed through their dedicated
// endpoints.
type UpdateTaskRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	ExpiryDate  time.Time `json:"expiryDate" binding:"required"`
}
