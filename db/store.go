package db

import (
	"context"
	"errors"

	"contesthub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by single-document lookups that match nothing
var ErrNotFound = errors.New("document not found")

// UserStore covers the users collection
type UserStore interface {
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) (*models.InsertResult, error)
	// UpsertUserByEmail overwrites name, email, role, contestAdded, photo and
	// Contest on the user with the given email, creating it when absent.
	UpsertUserByEmail(ctx context.Context, email string, user *models.User) (*models.UpdateResult, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUsersByWins(ctx context.Context) ([]models.User, error)
	TopContestCreators(ctx context.Context, limit int64) ([]models.User, error)
	// RecordUserWin increments win and marks the user's participation record
	// for contestID as won. Nothing is created when the record is missing.
	RecordUserWin(ctx context.Context, email, contestID string) (*models.UpdateResult, error)
}

// ContestStore covers the contests collection
type ContestStore interface {
	InsertContest(ctx context.Context, contest *models.Contest) (*models.InsertResult, error)
	UpsertContest(ctx context.Context, id primitive.ObjectID, contest *models.Contest) (*models.UpdateResult, error)
	DeleteContest(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error)
	FindContest(ctx context.Context, id primitive.ObjectID) (*models.Contest, error)
	ListContests(ctx context.Context) ([]models.Contest, error)
	ListContestsByCreator(ctx context.Context, email string) ([]models.Contest, error)
	// ListApprovedContests returns approved contests, restricted to tag
	// category when category is non-empty.
	ListApprovedContests(ctx context.Context, category string) ([]models.Contest, error)
	PageApprovedContests(ctx context.Context, category string, page, size int64) ([]models.Contest, error)
	// SearchContestsByTag matches query as a literal, case-insensitive
	// substring of the tag.
	SearchContestsByTag(ctx context.Context, query string) ([]models.Contest, error)
	TopContests(ctx context.Context, limit int64) ([]models.Contest, error)
}

// SubmissionStore covers the submissions collection
type SubmissionStore interface {
	InsertSubmission(ctx context.Context, submission *models.Submission) (*models.InsertResult, error)
	ListSubmissionsByContest(ctx context.Context, contestID string) ([]models.Submission, error)
	// RecordSubmissionWin sets userResult to Win on the (email, contestID)
	// submission, creating it when absent.
	RecordSubmissionWin(ctx context.Context, email, contestID string) (*models.UpdateResult, error)
	ListWinningSubmissions(ctx context.Context) ([]models.Submission, error)
}

// Store is the full data access surface injected into the HTTP layer
type Store interface {
	UserStore
	ContestStore
	SubmissionStore
	Ping(ctx context.Context) error
}
