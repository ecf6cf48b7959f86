package db

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"reflect"
	"regexp"
	"sort"
	"sync"

	"contesthub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is a non-persistent Store for tests and local development.
// It follows the same filter, sort and upsert rules as MongoStore.
type MemoryStore struct {
	mu          sync.RWMutex
	users       []models.User
	contests    []models.Contest
	submissions []models.Submission
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func cloneEntries(entries []models.ContestEntry) []models.ContestEntry {
	if entries == nil {
		return nil
	}
	out := make([]models.ContestEntry, len(entries))
	copy(out, entries)
	return out
}

func cloneUser(u models.User) models.User {
	u.Contest = cloneEntries(u.Contest)
	return u
}

func cloneSubmission(sub models.Submission) models.Submission {
	if sub.Payload != nil {
		payload := make(map[string]interface{}, len(sub.Payload))
		for k, v := range sub.Payload {
			payload[k] = v
		}
		sub.Payload = payload
	}
	return sub
}

func newerID(a, b primitive.ObjectID) bool {
	return bytes.Compare(a[:], b[:]) > 0
}

func limitOf[T any](items []T, limit int64) []T {
	if limit > 0 && int64(len(items)) > limit {
		return items[:limit]
	}
	return items
}

// Users

func (s *MemoryStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Email == email {
			found := cloneUser(u)
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) CreateUser(ctx context.Context, user *models.User) (*models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users = append(s.users, cloneUser(*user))
	return &models.InsertResult{Acknowledged: true, InsertedID: user.ID}, nil
}

func (s *MemoryStore) UpsertUserByEmail(ctx context.Context, email string, user *models.User) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	apply := func(u *models.User) {
		u.Name = user.Name
		u.Email = user.Email
		u.Role = user.Role
		u.ContestAdded = user.ContestAdded
		u.Photo = user.Photo
		u.Contest = cloneEntries(user.Contest)
	}

	for i := range s.users {
		if s.users[i].Email != email {
			continue
		}
		before := cloneUser(s.users[i])
		apply(&s.users[i])
		res := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
		if !reflect.DeepEqual(before, s.users[i]) {
			res.ModifiedCount = 1
		}
		return res, nil
	}

	created := models.User{ID: primitive.NewObjectID(), Email: email}
	apply(&created)
	s.users = append(s.users, created)
	return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: created.ID}, nil
}

func (s *MemoryStore) sortedUsers(less func(a, b models.User) bool) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, cloneUser(u))
	}
	sort.SliceStable(users, func(i, j int) bool { return less(users[i], users[j]) })
	return users
}

func (s *MemoryStore) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.sortedUsers(func(a, b models.User) bool { return newerID(a.ID, b.ID) }), nil
}

func (s *MemoryStore) ListUsersByWins(ctx context.Context) ([]models.User, error) {
	return s.sortedUsers(func(a, b models.User) bool { return a.Win > b.Win }), nil
}

func (s *MemoryStore) TopContestCreators(ctx context.Context, limit int64) ([]models.User, error) {
	users := s.sortedUsers(func(a, b models.User) bool { return a.ContestAdded > b.ContestAdded })
	return limitOf(users, limit), nil
}

func (s *MemoryStore) RecordUserWin(ctx context.Context, email, contestID string) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		u := &s.users[i]
		if u.Email != email {
			continue
		}
		entry := u.ContestEntry(contestID)
		if entry == nil {
			continue
		}
		entry.Result = models.ResultWin
		u.Win++
		return &models.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
	}
	return &models.UpdateResult{Acknowledged: true}, nil
}

// Contests

func (s *MemoryStore) InsertContest(ctx context.Context, contest *models.Contest) (*models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if contest.ID.IsZero() {
		contest.ID = primitive.NewObjectID()
	}
	s.contests = append(s.contests, *contest)
	return &models.InsertResult{Acknowledged: true, InsertedID: contest.ID}, nil
}

func (s *MemoryStore) UpsertContest(ctx context.Context, id primitive.ObjectID, contest *models.Contest) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	replacement := *contest
	replacement.ID = id

	for i := range s.contests {
		if s.contests[i].ID != id {
			continue
		}
		res := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
		if s.contests[i] != replacement {
			res.ModifiedCount = 1
		}
		s.contests[i] = replacement
		return res, nil
	}

	// the equality filter on _id seeds the inserted document
	s.contests = append(s.contests, replacement)
	return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: id}, nil
}

func (s *MemoryStore) DeleteContest(ctx context.Context, id primitive.ObjectID) (*models.DeleteResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.contests {
		if s.contests[i].ID == id {
			s.contests = append(s.contests[:i], s.contests[i+1:]...)
			return &models.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return &models.DeleteResult{Acknowledged: true}, nil
}

func (s *MemoryStore) FindContest(ctx context.Context, id primitive.ObjectID) (*models.Contest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contests {
		if c.ID == id {
			found := c
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

// filterContests returns matching contests in insertion order, or newest
// first when newest is set.
func (s *MemoryStore) filterContests(match func(models.Contest) bool, newest bool) []models.Contest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Contest, 0)
	for _, c := range s.contests {
		if match(c) {
			out = append(out, c)
		}
	}
	if newest {
		sort.SliceStable(out, func(i, j int) bool { return newerID(out[i].ID, out[j].ID) })
	}
	return out
}

func approved(category string) func(models.Contest) bool {
	return func(c models.Contest) bool {
		if c.Status != models.ContestStatusApproved {
			return false
		}
		return category == "" || c.Tag == category
	}
}

func (s *MemoryStore) ListContests(ctx context.Context) ([]models.Contest, error) {
	return s.filterContests(func(models.Contest) bool { return true }, true), nil
}

func (s *MemoryStore) ListContestsByCreator(ctx context.Context, email string) ([]models.Contest, error) {
	return s.filterContests(func(c models.Contest) bool { return c.CreatedBy == email }, true), nil
}

func (s *MemoryStore) ListApprovedContests(ctx context.Context, category string) ([]models.Contest, error) {
	return s.filterContests(approved(category), false), nil
}

func (s *MemoryStore) PageApprovedContests(ctx context.Context, category string, page, size int64) ([]models.Contest, error) {
	if page < 0 || size < 1 || page > math.MaxInt64/size {
		return nil, fmt.Errorf("invalid page %d of size %d", page, size)
	}
	contests := s.filterContests(approved(category), true)
	skip := page * size
	if skip >= int64(len(contests)) {
		return []models.Contest{}, nil
	}
	return limitOf(contests[skip:], size), nil
}

func (s *MemoryStore) SearchContestsByTag(ctx context.Context, query string) ([]models.Contest, error) {
	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(query))
	if err != nil {
		return nil, fmt.Errorf("search contests: %w", err)
	}
	return s.filterContests(func(c models.Contest) bool { return pattern.MatchString(c.Tag) }, false), nil
}

func (s *MemoryStore) TopContests(ctx context.Context, limit int64) ([]models.Contest, error) {
	contests := s.filterContests(func(models.Contest) bool { return true }, false)
	sort.SliceStable(contests, func(i, j int) bool {
		return contests[i].Participation > contests[j].Participation
	})
	return limitOf(contests, limit), nil
}

// Submissions

func (s *MemoryStore) InsertSubmission(ctx context.Context, submission *models.Submission) (*models.InsertResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if submission.ID.IsZero() {
		submission.ID = primitive.NewObjectID()
	}
	s.submissions = append(s.submissions, cloneSubmission(*submission))
	return &models.InsertResult{Acknowledged: true, InsertedID: submission.ID}, nil
}

func (s *MemoryStore) filterSubmissions(match func(models.Submission) bool) []models.Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Submission, 0)
	for _, sub := range s.submissions {
		if match(sub) {
			out = append(out, cloneSubmission(sub))
		}
	}
	return out
}

func (s *MemoryStore) ListSubmissionsByContest(ctx context.Context, contestID string) ([]models.Submission, error) {
	return s.filterSubmissions(func(sub models.Submission) bool { return sub.ContestID == contestID }), nil
}

func (s *MemoryStore) RecordSubmissionWin(ctx context.Context, email, contestID string) (*models.UpdateResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.submissions {
		sub := &s.submissions[i]
		if sub.UserEmail != email || sub.ContestID != contestID {
			continue
		}
		res := &models.UpdateResult{Acknowledged: true, MatchedCount: 1}
		if sub.UserResult != models.ResultWin {
			sub.UserResult = models.ResultWin
			res.ModifiedCount = 1
		}
		return res, nil
	}

	created := models.Submission{
		ID:         primitive.NewObjectID(),
		ContestID:  contestID,
		UserEmail:  email,
		UserResult: models.ResultWin,
	}
	s.submissions = append(s.submissions, created)
	return &models.UpdateResult{Acknowledged: true, UpsertedCount: 1, UpsertedID: created.ID}, nil
}

func (s *MemoryStore) ListWinningSubmissions(ctx context.Context) ([]models.Submission, error) {
	return s.filterSubmissions(func(sub models.Submission) bool { return sub.UserResult == models.ResultWin }), nil
}
