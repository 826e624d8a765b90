package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
	"github.com/nexusai/nexus-backend/internal/pkg/apperrors"
)

// MongoUserRepository handles document store operations for users
type MongoUserRepository struct {
	users *mongo.Collection
}

// NewMongoUserRepository creates a new document-backed user repository
func NewMongoUserRepository(users *mongo.Collection) *MongoUserRepository {
	return &MongoUserRepository{users: users}
}

// GetUser retrieves a user by uid. Applications are embedded in the document,
// so no join is needed. Unknown uid yields (nil, nil).
func (r *MongoUserRepository) GetUser(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, bson.M{"uid": uid}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	normalizeUser(&user)
	return &user, nil
}

// CreateUser inserts a new user. The unique indexes on uid and email reject
// duplicates at the store level.
func (r *MongoUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %s", apperrors.ErrUserAlreadyExists, user.UID)
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// UpdateUser replaces every field present in the patch and returns the
// post-update record. Unknown uid yields (nil, nil).
func (r *MongoUserRepository) UpdateUser(ctx context.Context, uid string, patch *dto.UpdateUserRequest) (*models.User, error) {
	set := bson.M{}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.Role != nil {
		set["role"] = *patch.Role
	}
	if patch.CollegeID != nil {
		set["collegeId"] = *patch.CollegeID
	}
	if patch.Skills != nil {
		set["skills"] = *patch.Skills
	}
	if patch.ProfileStrength != nil {
		set["profileStrength"] = *patch.ProfileStrength
	}
	if patch.Bio != nil {
		set["bio"] = *patch.Bio
	}

	var user models.User

	if len(set) == 0 {
		return r.GetUser(ctx, uid)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.users.FindOneAndUpdate(ctx, bson.M{"uid": uid}, bson.M{"$set": set}, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating user: %w", err)
	}

	normalizeUser(&user)
	return &user, nil
}

// ApplyToJob pushes one application onto the user's embedded collection. An
// unknown uid is a silent no-op, matching the update-if-present semantics.
func (r *MongoUserRepository) ApplyToJob(ctx context.Context, uid string, application models.Application) error {
	_, err := r.users.UpdateOne(ctx,
		bson.M{"uid": uid},
		bson.M{"$push": bson.M{"applications": application}},
	)
	if err != nil {
		return fmt.Errorf("error recording application: %w", err)
	}
	return nil
}

// ListCollegeStudents retrieves all student-role users of a college
func (r *MongoUserRepository) ListCollegeStudents(ctx context.Context, collegeID string) ([]*models.User, error) {
	filter := bson.M{"collegeId": collegeID, "role": models.RoleStudent}
	cursor, err := r.users.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error listing college students: %w", err)
	}
	defer cursor.Close(ctx)

	students := []*models.User{}
	for cursor.Next(ctx) {
		var user models.User
		if err := cursor.Decode(&user); err != nil {
			return nil, fmt.Errorf("error decoding user: %w", err)
		}
		normalizeUser(&user)
		students = append(students, &user)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// normalizeUser replaces nil collections so responses always carry arrays
func normalizeUser(user *models.User) {
	if user.Skills == nil {
		user.Skills = []string{}
	}
	if user.Applications == nil {
		user.Applications = []models.Application{}
	}
}
