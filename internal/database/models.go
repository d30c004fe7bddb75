package database

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// User is an account on the portal. Email is unique across all records and
// PasswordHash never holds plaintext once persisted.
type User struct {
	gorm.Model
	FullName     string  `gorm:"size:255"`
	Email        string  `gorm:"uniqueIndex;size:255"`
	PhoneNumber  string  `gorm:"size:32"`
	PasswordHash string  `gorm:"size:255"`
	Role         string  `gorm:"size:32"`
	Profile      Profile `gorm:"embedded;embeddedPrefix:profile_"`
}

// Profile holds the user-editable presentation fields. Skills is an ordered
// list stored as JSON; the update handler replaces it wholesale.
type Profile struct {
	PhotoURL           string                      `gorm:"size:512" json:"profilePhoto"`
	Bio                string                      `gorm:"size:1024" json:"bio"`
	Skills             datatypes.JSONSlice[string] `json:"skills"`
	ResumeURL          string                      `gorm:"size:512" json:"resume"`
	ResumeOriginalName string                      `gorm:"size:255" json:"resumeOriginalName"`
}
