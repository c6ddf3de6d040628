package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      string             `bson:"user_id" json:"userID"`
	Email       string             `bson:"email" json:"email" validate:"required,email"`
	Username    string             `bson:"username" json:"username" validate:"required,min=3"`
	PhoneNumber string             `bson:"phone_number" json:"phoneNumber" validate:"required"`
	Password    string             `bson:"password" json:"-"`
	QRCode      string             `bson:"qr_code,omitempty" json:"qrCode,omitempty"`
	ProfilePic  string             `bson:"profile_pic,omitempty" json:"profilePic,omitempty"`
	CreatedAt   time.Time          `bson:"created_at,omitempty" json:"created_at,omitempty"`
	UpdatedAt   time.Time          `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

func (u *User) BeforeCreate() error {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	return nil
}

// ProfileUpdate carries optional profile changes; nil fields are left
// untouched.
type ProfileUpdate struct {
	NewEmail    *string
	Username    *string
	PhoneNumber *string
	ProfilePic  *string
}

type UserRepo interface {
	CreateUser(ctx context.Context, user *User) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByUserID(ctx context.Context, userID string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, currentEmail string, update *ProfileUpdate) (*User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) (*User, error)
}
