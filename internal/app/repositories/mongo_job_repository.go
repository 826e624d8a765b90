package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/nexusai/nexus-backend/internal/app/models"
	"github.com/nexusai/nexus-backend/internal/app/models/dto"
)

// MongoJobRepository handles document store operations for jobs
type MongoJobRepository struct {
	jobs *mongo.Collection
}

// NewMongoJobRepository creates a new document-backed job repository
func NewMongoJobRepository(jobs *mongo.Collection) *MongoJobRepository {
	return &MongoJobRepository{jobs: jobs}
}

// ListJobs retrieves all jobs ordered by postedAt descending
func (r *MongoJobRepository) ListJobs(ctx context.Context) ([]*models.Job, error) {
	opts := options.Find().SetSort(bson.D{{Key: "postedAt", Value: -1}})
	cursor, err := r.jobs.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer cursor.Close(ctx)

	jobs := []*models.Job{}
	for cursor.Next(ctx) {
		var job models.Job
		if err := cursor.Decode(&job); err != nil {
			return nil, fmt.Errorf("error decoding job: %w", err)
		}
		if job.SkillsRequired == nil {
			job.SkillsRequired = []string{}
		}
		jobs = append(jobs, &job)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return jobs, nil
}

// CreateJob inserts a new job. The identity is driver-generated, assigned
// before the insert so callers see it without a round trip.
func (r *MongoJobRepository) CreateJob(ctx context.Context, job *models.Job) error {
	job.ID = primitive.NewObjectID().Hex()

	if _, err := r.jobs.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("error creating job: %w", err)
	}

	return nil
}

// UpdateJob replaces the provided fields of the named job and returns the
// post-update record. postedAt and identity are never touched.
func (r *MongoJobRepository) UpdateJob(ctx context.Context, id string, patch *dto.UpdateJobRequest) (*models.Job, error) {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Company != nil {
		set["company"] = *patch.Company
	}
	if patch.Location != nil {
		set["location"] = *patch.Location
	}
	if patch.Salary != nil {
		set["salary"] = *patch.Salary
	}
	if patch.Type != nil {
		set["type"] = *patch.Type
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.MatchScore != nil {
		set["matchScore"] = *patch.MatchScore
	}
	if patch.RecruiterID != nil {
		set["recruiterId"] = *patch.RecruiterID
	}
	if patch.SkillsRequired != nil {
		set["skillsRequired"] = *patch.SkillsRequired
	}
	if patch.ExperienceLevel != nil {
		set["experienceLevel"] = *patch.ExperienceLevel
	}
	if patch.Benefits != nil {
		set["benefits"] = *patch.Benefits
	}
	if patch.Deadline != nil {
		set["deadline"] = *patch.Deadline
	}

	var job models.Job

	// An empty patch still has to return the current record
	if len(set) == 0 {
		err := r.jobs.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if err != nil {
			return nil, fmt.Errorf("error retrieving job: %w", err)
		}
		return &job, nil
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err := r.jobs.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&job)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error updating job: %w", err)
	}

	if job.SkillsRequired == nil {
		job.SkillsRequired = []string{}
	}

	return &job, nil
}

// DeleteJob removes a job by ID. Unknown ids are a silent success.
func (r *MongoJobRepository) DeleteJob(ctx context.Context, id string) error {
	if _, err := r.jobs.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("error deleting job: %w", err)
	}
	return nil
}
