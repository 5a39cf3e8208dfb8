package database

import (
	"context"
	"strings"
	"time"

	"app/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindUserByEmail fetches a user by email, or mongo.ErrNoDocuments.
func FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := Coll(UsersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindUserByID fetches a user by hex id, or mongo.ErrNoDocuments.
func FindUserByID(ctx context.Context, id string) (*models.User, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, mongo.ErrNoDocuments
	}
	var user models.User
	err = Coll(UsersCollection).FindOne(ctx, bson.M{"_id": objID}).Decode(&user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CountUsers returns the total number of registered users.
func CountUsers(ctx context.Context) (int64, error) {
	return Coll(UsersCollection).CountDocuments(ctx, bson.M{})
}

// InsertUser stores a new user and returns it with its assigned id.
func InsertUser(ctx context.Context, user models.User) (models.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := Coll(UsersCollection).InsertOne(ctx, user)
	if err != nil {
		return user, err
	}
	user.ID = res.InsertedID.(primitive.ObjectID)
	return user, nil
}

// SetUserApproval flips a user's approval flag.
func SetUserApproval(ctx context.Context, id primitive.ObjectID, approved bool) error {
	_, err := Coll(UsersCollection).UpdateOne(ctx, bson.M{"_id": id}, bson.M{
		"$set": bson.M{"isApproved": approved, "updatedAt": time.Now()},
	})
	return err
}

// ListUsers returns all users, newest first.
func ListUsers(ctx context.Context) ([]models.User, error) {
	return findUsers(ctx, bson.M{})
}

// ListPendingUsers returns unapproved regular users, newest first.
func ListPendingUsers(ctx context.Context) ([]models.User, error) {
	return findUsers(ctx, bson.M{"isApproved": false, "role": "user"})
}

// AdminEmails returns the addresses of all active admins, for expiry
// notifications.
func AdminEmails(ctx context.Context) ([]string, error) {
	admins, err := findUsers(ctx, bson.M{"role": "admin", "isActive": true})
	if err != nil {
		return nil, err
	}
	emails := make([]string, len(admins))
	for i, admin := range admins {
		emails[i] = admin.Email
	}
	return emails, nil
}

func findUsers(ctx context.Context, query bson.M) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := Coll(UsersCollection).Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// IsEmailPreApproved reports whether an address is on the pre-approved list.
func IsEmailPreApproved(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(email)
	count, err := Coll(PreApprovedCollection).CountDocuments(ctx, bson.M{"email": email})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// AddPreApprovedEmail stores a pre-approved address.
func AddPreApprovedEmail(ctx context.Context, email, addedBy string) (models.PreApprovedEmail, error) {
	entry := models.PreApprovedEmail{
		Email:     strings.ToLower(email),
		AddedBy:   addedBy,
		CreatedAt: time.Now(),
	}
	res, err := Coll(PreApprovedCollection).InsertOne(ctx, entry)
	if err != nil {
		return entry, err
	}
	entry.ID = res.InsertedID.(primitive.ObjectID)
	return entry, nil
}
