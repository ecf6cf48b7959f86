package db

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"

	"contesthub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	newestFirst = bson.D{{Key: "_id", Value: -1}}
	upsert      = options.Update().SetUpsert(true)
)

// MongoStore implements Store on top of a single MongoDB database
type MongoStore struct {
	database    *mongo.Database
	users       *mongo.Collection
	contests    *mongo.Collection
	submissions *mongo.Collection
}

// NewMongoStore binds the store to the named collections of database
func NewMongoStore(database *mongo.Database, names Collections) *MongoStore {
	return &MongoStore{
		database:    database,
		users:       database.Collection(names.Users),
		contests:    database.Collection(names.Contests),
		submissions: database.Collection(names.Submissions),
	}
}

// Ping checks that the primary is reachable
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.database.Client().Ping(ctx, readpref.Primary())
}

// findAll runs a find and decodes every document into a non-nil slice
func findAll[T any](ctx context.Context, coll *mongo.Collection, filter interface{}, opts ...*options.FindOptions) ([]T, error) {
	cursor, err := coll.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", coll.Name(), err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0)
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decode %s: %w", coll.Name(), err)
	}
	return results, nil
}

// findOne decodes a single document, mapping no match to ErrNotFound
func findOne[T any](ctx context.Context, coll *mongo.Collection, filter interface{}) (*T, error) {
	var doc T
	err := coll.FindOne(ctx, filter).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find one in %s: %w", coll.Name(), err)
	}
	return &doc, nil
}

func insertResult(res *mongo.InsertOneResult) *models.InsertResult {
	return &models.InsertResult{Acknowledged: true, InsertedID: res.InsertedID}
}

func updateResult(res *mongo.UpdateResult) *models.UpdateResult {
	return &models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func approvedFilter(category string) bson.M {
	filter := bson.M{"status": models.ContestStatusApproved}
	if category != "" {
		filter["tag"] = category
	}
	return filter
}

// Users

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return findOne[models.User](ctx, s.users, bson.M{"email": email})
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	res, err := s.users.InsertOne(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return insertResult(res), nil
}

func (s *MongoStore) UpsertUserByEmail(ctx context.Context, email string, user *models.User) (*models.UpdateResult, error) {
	update := bson.M{"$set": bson.M{
		"name":         user.Name,
		"email":        user.Email,
		"role":         user.Role,
		"contestAdded": user.ContestAdded,
		"photo":        user.Photo,
		"Contest":      user.Contest,
	}}
	res, err := s.users.UpdateOne(ctx, bson.M{"email": email}, update, upsert)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}
	return updateResult(res), nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return findAll[models.User](ctx, s.users, bson.M{}, options.Find().SetSort(newestFirst))
}

func (s *MongoStore) ListUsersByWins(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "win", Value: -1}})
	return findAll[models.User](ctx, s.users, bson.M{}, opts)
}

func (s *MongoStore) TopContestCreators(ctx context.Context, limit int64) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "contestAdded", Value: -1}}).SetLimit(limit)
	return findAll[models.User](ctx, s.users, bson.M{}, opts)
}

func (s *MongoStore) RecordUserWin(ctx context.Context, email, contestID string) (*models.UpdateResult, error) {
	// MongoDB refuses positional upserts, so this update never inserts
	filter := bson.M{"email": email, "Contest.contestID": contestID}
	update := bson.M{
		"$set": bson.M{"Contest.$.result": models.ResultWin},
		"$inc": bson.M{"win": 1},
	}
	res, err := s.users.UpdateOne(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("record user win: %w", err)
	}
	return updateResult(res), nil
}

// Contests

func (s *MongoStore) InsertContest(ctx context.Context, contest *models.Contest) (*models.InsertResult, error) {
	if contest.ID.IsZero() {
		contest.ID = primitive.NewObjectID()
	}
	res, err := s.contests.InsertOne(ctx, contest)
	if err != nil {
		return nil, fmt.Errorf("insert contest: %w", err)
	}
	return insertResult(res), nil
}

func (s *MongoStore) UpsertContest(ctx context.Context, id primitive.ObjectID, contest *models.Contest) (*models.UpdateResult, error) {
	update := bson.M{"$set": bson.M{
		"name":            contest.Name,
		"image":           contest.Image,
		"contestPrice":    contest.ContestPrice,
		"prizeMoney":      contest.PrizeMoney,
		"details":         contest.Details,
		"instruction":     contest.Instruction,
		"contestCreator":  contest.ContestCreator,
		"createdBy":       contest.CreatedBy,
		"tag":             contest.Tag,
		"status":          contest.Status,
		"participation":   contest.Participation,
		"contestDeadline": contest.ContestDeadline,
	}}
	res, err := s.contests.UpdateOne(ctx, bson.M{"_id": id}, update, upsert)
	if err != nil {
		return nil, fmt.Errorf("upsert contest: %w", err)
	}
	return updateResult(res), nil
}

func (s *MongoStore) DeleteContest(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	res, err := s.contests.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, fmt.Errorf("delete contest: %w", err)
	}
	return &models.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

func (s *MongoStore) FindContest(ctx context.Context, id primitive.ObjectID) (*models.Contest, error) {
	return findOne[models.Contest](ctx, s.contests, bson.M{"_id": id})
}

func (s *MongoStore) ListContests(ctx context.Context) ([]models.Contest, error) {
	return findAll[models.Contest](ctx, s.contests, bson.M{}, options.Find().SetSort(newestFirst))
}

func (s *MongoStore) ListContestsByCreator(ctx context.Context, email string) ([]models.Contest, error) {
	return findAll[models.Contest](ctx, s.contests, bson.M{"createdBy": email}, options.Find().SetSort(newestFirst))
}

func (s *MongoStore) ListApprovedContests(ctx context.Context, category string) ([]models.Contest, error) {
	return findAll[models.Contest](ctx, s.contests, approvedFilter(category))
}

func (s *MongoStore) PageApprovedContests(ctx context.Context, category string, page, size int64) ([]models.Contest, error) {
	if page < 0 || size < 1 || page > math.MaxInt64/size {
		return nil, fmt.Errorf("invalid page %d of size %d", page, size)
	}
	opts := options.Find().
		SetSort(newestFirst).
		SetSkip(page * size).
		SetLimit(size)
	return findAll[models.Contest](ctx, s.contests, approvedFilter(category), opts)
}

func (s *MongoStore) SearchContestsByTag(ctx context.Context, query string) ([]models.Contest, error) {
	filter := bson.M{"tag": primitive.Regex{Pattern: regexp.QuoteMeta(query), Options: "i"}}
	return findAll[models.Contest](ctx, s.contests, filter)
}

func (s *MongoStore) TopContests(ctx context.Context, limit int64) ([]models.Contest, error) {
	opts := options.Find().SetSort(bson.D{{Key: "participation", Value: -1}}).SetLimit(limit)
	return findAll[models.Contest](ctx, s.contests, bson.M{}, opts)
}

// Submissions

func (s *MongoStore) InsertSubmission(ctx context.Context, submission *models.Submission) (*models.InsertResult, error) {
	if submission.ID.IsZero() {
		submission.ID = primitive.NewObjectID()
	}
	res, err := s.submissions.InsertOne(ctx, submission)
	if err != nil {
		return nil, fmt.Errorf("insert submission: %w", err)
	}
	return insertResult(res), nil
}

func (s *MongoStore) ListSubmissionsByContest(ctx context.Context, contestID string) ([]models.Submission, error) {
	return findAll[models.Submission](ctx, s.submissions, bson.M{"contestID": contestID})
}

func (s *MongoStore) RecordSubmissionWin(ctx context.Context, email, contestID string) (*models.UpdateResult, error) {
	filter := bson.M{"userEmail": email, "contestID": contestID}
	update := bson.M{"$set": bson.M{"userResult": models.ResultWin}}
	res, err := s.submissions.UpdateOne(ctx, filter, update, upsert)
	if err != nil {
		return nil, fmt.Errorf("record submission win: %w", err)
	}
	return updateResult(res), nil
}

func (s *MongoStore) ListWinningSubmissions(ctx context.Context) ([]models.Submission, error) {
	return findAll[models.Submission](ctx, s.submissions, bson.M{"userResult": models.ResultWin})
}
