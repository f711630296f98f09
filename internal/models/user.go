// internal/models/user.go
package models

import (
	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string `json:"username" gorm:"uniqueIndex;size:150;not null"`
	FirstName    string `json:"first_name" gorm:"size:150;not null"`
	LastName     string `json:"last_name" gorm:"size:150;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;size:254;not null"`
	PasswordHash string `json:"-" gorm:"size:255;not null"`
	IsActive     bool   `json:"-" gorm:"default:true"`
	IsStaff      bool   `json:"-" gorm:"default:false"`

	// Relationships
	Recipes []Recipe `json:"recipes,omitempty" gorm:"foreignKey:AuthorID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// Follow is a directed subscription edge from a reader to an author.
type Follow struct {
	BaseModel
	UserID   uint `json:"user_id" gorm:"not null;uniqueIndex:idx_follow_pair"`
	AuthorID uint `json:"author_id" gorm:"not null;uniqueIndex:idx_follow_pair"`

	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
