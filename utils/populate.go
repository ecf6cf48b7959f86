package utils

import (
	"context"
	"fmt"

	"contesthub/db"
	"contesthub/models"
)

// PopulateDemoData fills an empty store with a few users, contests and
// submissions for local development. A store that already has users is left
// alone.
func PopulateDemoData(ctx context.Context, store db.Store) error {
	existing, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	contests := []models.Contest{
		{
			Name:            "Logo Design Sprint",
			Image:           "https://i.ibb.co/logo-sprint.png",
			ContestPrice:    10,
			PrizeMoney:      250,
			Details:         "Design a logo for a neighbourhood bakery.",
			Instruction:     "Submit a link to a PNG or SVG.",
			ContestCreator:  "Creator One",
			CreatedBy:       "creator@example.com",
			Tag:             "Image Design",
			Status:          models.ContestStatusApproved,
			Participation:   2,
			ContestDeadline: "2030-01-31",
		},
		{
			Name:            "Short Story",
			ContestPrice:    5,
			PrizeMoney:      100,
			Details:         "A story under 1000 words.",
			Instruction:     "Submit a shared document link.",
			ContestCreator:  "Creator One",
			CreatedBy:       "creator@example.com",
			Tag:             "Article Writing",
			Status:          models.ContestStatusApproved,
			Participation:   1,
			ContestDeadline: "2030-02-28",
		},
		{
			Name:            "Startup Pitch",
			ContestPrice:    20,
			PrizeMoney:      500,
			ContestCreator:  "Creator One",
			CreatedBy:       "creator@example.com",
			Tag:             "Business Idea",
			Status:          models.ContestStatusPending,
			ContestDeadline: "2030-03-31",
		},
	}
	for i := range contests {
		if _, err := store.InsertContest(ctx, &contests[i]); err != nil {
			return fmt.Errorf("seed contest %q: %w", contests[i].Name, err)
		}
	}
	logoID := contests[0].ID.Hex()
	storyID := contests[1].ID.Hex()

	users := []models.User{
		{Name: "Admin", Email: "admin@example.com", Role: "admin"},
		{Name: "Creator One", Email: "creator@example.com", Role: "creator", ContestAdded: len(contests)},
		{
			Name:    "Participant One",
			Email:   "user1@example.com",
			Role:    "user",
			Contest: []models.ContestEntry{{ContestID: logoID}, {ContestID: storyID}},
		},
		{
			Name:    "Participant Two",
			Email:   "user2@example.com",
			Role:    "user",
			Contest: []models.ContestEntry{{ContestID: logoID}},
		},
	}
	for i := range users {
		if _, err := store.CreateUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("seed user %s: %w", users[i].Email, err)
		}
	}

	submissions := []models.Submission{
		{ContestID: logoID, UserEmail: "user1@example.com", Payload: map[string]interface{}{"task": "https://example.com/logo-1.png"}},
		{ContestID: logoID, UserEmail: "user2@example.com", Payload: map[string]interface{}{"task": "https://example.com/logo-2.png"}},
		{ContestID: storyID, UserEmail: "user1@example.com", Payload: map[string]interface{}{"task": "https://example.com/story"}},
	}
	for i := range submissions {
		if _, err := store.InsertSubmission(ctx, &submissions[i]); err != nil {
			return fmt.Errorf("seed submission: %w", err)
		}
	}
	return nil
}
