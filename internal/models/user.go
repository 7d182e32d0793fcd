// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Phone        string     `json:"phone" gorm:"uniqueIndex;size:10;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	UserType     UserType   `json:"user_type" gorm:"type:varchar(20);not null;default:'customer'"`
	ProfileData  JSONB      `json:"profile_data,omitempty" gorm:"type:jsonb"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Products  []Product  `json:"products,omitempty" gorm:"foreignKey:DistributorID"`
	CartItems []CartItem `json:"cart_items,omitempty" gorm:"foreignKey:UserID"`
	Orders    []Order    `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Reviews   []Review   `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
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

func (u *User) IsDistributor() bool {
	return u.UserType == UserTypeDistributor
}
