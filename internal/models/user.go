// Package models contains data structures for the application's domain models.
package models

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt cost factor used for all stored passwords.
const PasswordCost = 10

// User represents a registered member of the Tech News application.
// The password column only ever holds a bcrypt hash; see HashPassword.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null" json:"username"`
	Email    string `gorm:"unique;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
}

// TableName pins the table to the singular lowercase name.
func (User) TableName() string { return "user" }

// HashPassword runs a plaintext password through bcrypt. Every store write
// path that carries a password must call this explicitly before persisting;
// the transform is never applied by an implicit hook.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether plain hashes to the stored password hash.
func (u *User) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(plain)) == nil
}
