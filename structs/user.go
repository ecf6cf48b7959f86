package structs

import "contesthub/models"

type CreateUserRequest struct {
	Name         string                `json:"name"`
	Email        string                `json:"email" binding:"required"`
	Role         string                `json:"role"`
	Photo        string                `json:"photo"`
	Contest      []models.ContestEntry `json:"Contest"`
	ContestAdded int                   `json:"contestAdded"`
	Win          int                   `json:"win"`
}

func (r *CreateUserRequest) User() *models.User {
	return &models.User{
		Name:         r.Name,
		Email:        r.Email,
		Role:         r.Role,
		Photo:        r.Photo,
		Contest:      contestEntries(r.Contest),
		ContestAdded: r.ContestAdded,
		Win:          r.Win,
	}
}

// UpdateUserRequest holds the fields overwritten by PUT /user/:email
type UpdateUserRequest struct {
	Name         string                `json:"name"`
	Email        string                `json:"email"`
	Role         string                `json:"role"`
	Photo        string                `json:"photo"`
	Contest      []models.ContestEntry `json:"Contest"`
	ContestAdded int                   `json:"contestAdded"`
}

func (r *UpdateUserRequest) User() *models.User {
	return &models.User{
		Name:         r.Name,
		Email:        r.Email,
		Role:         r.Role,
		Photo:        r.Photo,
		Contest:      contestEntries(r.Contest),
		ContestAdded: r.ContestAdded,
	}
}

// WinnerQuery identifies the (user, contest) pair for both winner endpoints
type WinnerQuery struct {
	Email     string `form:"email" binding:"required"`
	ContestID string `form:"contestID" binding:"required"`
}

// contestEntries keeps Contest an array in storage when the client omits it
func contestEntries(entries []models.ContestEntry) []models.ContestEntry {
	if entries == nil {
		return []models.ContestEntry{}
	}
	return entries
}
