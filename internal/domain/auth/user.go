package auth

import "time"

type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func (r Role) IsValid() bool {
	return r == RoleClient || r == RoleProvider || r == RoleAdmin
}

type User struct {
	ID           string `gorm:"column:id;primaryKey" json:"id"`
	Email        string `gorm:"column:email;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"column:password_hash" json:"-"`
	Name         string `gorm:"column:name" json:"name"`
	Phone        string `gorm:"column:phone" json:"phone"`
	Role         Role   `gorm:"column:role" json:"role"`

	IsActive bool `gorm:"column:is_active" json:"is_active"`

	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string { return "users" }
