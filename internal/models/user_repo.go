package models

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (mdb *MongodbRepo) CreateUser(ctx context.Context, user *User) (*User, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, UserColName)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	if err := user.BeforeCreate(); err != nil {
		return nil, err
	}

	if _, err := col.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("%w: inserting user: %v", ErrStorageUnavailable, err)
	}

	return user, nil
}

func (mdb *MongodbRepo) findUser(ctx context.Context, filter bson.M) (*User, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, UserColName)
	if err != nil {
		return nil, err
	}

	var user User
	if err := col.FindOne(ctx, filter).Decode(&user); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: finding user: %v", ErrStorageUnavailable, err)
	}
	return &user, nil
}

func (mdb *MongodbRepo) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return mdb.findUser(ctx, bson.M{"email": email})
}

func (mdb *MongodbRepo) GetUserByUserID(ctx context.Context, userID string) (*User, error) {
	return mdb.findUser(ctx, bson.M{"user_id": userID})
}

func (mdb *MongodbRepo) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return mdb.findUser(ctx, bson.M{"username": username})
}

// UpdateProfile applies the non-nil fields of update to the user found by
// currentEmail and returns the updated document. Uniqueness of a new email
// or username is the service's concern; the unique indexes are the final
// arbiter and surface as ErrDuplicateUser.
func (mdb *MongodbRepo) UpdateProfile(ctx context.Context, currentEmail string, update *ProfileUpdate) (*User, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, UserColName)
	if err != nil {
		return nil, err
	}

	set := bson.M{"updated_at": time.Now()}
	if update.NewEmail != nil {
		set["email"] = *update.NewEmail
	}
	if update.Username != nil {
		set["username"] = *update.Username
	}
	if update.PhoneNumber != nil {
		set["phone_number"] = *update.PhoneNumber
	}
	if update.ProfilePic != nil {
		set["profile_pic"] = *update.ProfilePic
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated User
	err = col.FindOneAndUpdate(ctx, bson.M{"email": currentEmail}, bson.M{"$set": set}, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateUser
		}
		return nil, fmt.Errorf("%w: updating profile: %v", ErrStorageUnavailable, err)
	}

	return &updated, nil
}

func (mdb *MongodbRepo) UpdatePassword(ctx context.Context, email, passwordHash string) (*User, error) {
	col, err := mdb.GetCollection(ctx, DatabaseName, UserColName)
	if err != nil {
		return nil, err
	}

	update := bson.M{"$set": bson.M{"password": passwordHash, "updated_at": time.Now()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var updated User
	err = col.FindOneAndUpdate(ctx, bson.M{"email": email}, update, opts).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%w: updating password: %v", ErrStorageUnavailable, err)
	}

	return &updated, nil
}
