package model

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

type User struct {
	ID        string `gorm:"primaryKey;size:128;not null"` // auth subject (email)
	Name      string `gorm:"size:128"`
	Photo     string `gorm:"size:512"`
	Role      Role   `gorm:"size:16;not null;default:user"`
	CreatedAt time.Time
}
