package domain

import (
	"strings"
	"time"
)

// User representa una cuenta del sistema
type User struct {
	ID        string    `bson:"-" gorm:"primaryKey;type:varchar(36)" json:"-"`
	Username  string    `bson:"username" gorm:"uniqueIndex;size:191;not null" json:"username"`
	Password  string    `bson:"password" gorm:"not null" json:"-"` // El "-" oculta el hash en JSON
	FirstName string    `bson:"firstName" gorm:"column:first_name" json:"firstName"`
	LastName  string    `bson:"lastName" gorm:"column:last_name" json:"lastName"`
	CreatedAt time.Time `bson:"createdAt" json:"-"`
}

// TableName especifica el nombre de la tabla en MySQL
func (User) TableName() string {
	return "users"
}

// UserResponse es la forma pública de un usuario (sin el hash del password)
type UserResponse struct {
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Serialize proyecta el usuario a su forma pública
func (u *User) Serialize() UserResponse {
	return UserResponse{
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Validate controla los campos obligatorios antes de escribir
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return NewValidationError("username", "Path `username` is required")
	}
	if u.Password == "" {
		return NewValidationError("password", "Path `password` is required")
	}
	return nil
}
