package domain

import (
	"time"

	"github.com/google/uuid"
)

type UserID int

type User struct {
	ID                UserID
	UUID              uuid.UUID
	Email             string `validate:"required,email,max=255"`
	EncryptedPassword string `validate:"required"`
	AccessToken       string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	DeletedAt         *time.Time
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// Record projects the user to the fields the authentication engine reads.
func (u User) Record() UserRecord {
	return UserRecord{
		ID:                u.ID,
		EncryptedPassword: u.EncryptedPassword,
	}
}

// UserRecord is what a credential store hands to the engine. It is a value,
// the engine never mutates or keeps it.
type UserRecord struct {
	ID                UserID
	EncryptedPassword string
}
