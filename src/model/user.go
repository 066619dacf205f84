package model

import "time"

// User is the journal owner attached to the request context by the auth
// middleware. Account management itself lives outside this service.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName controls the exact table name for users.
func (User) TableName() string {
	return "users"
}
