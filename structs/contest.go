package structs

import "contesthub/models"

// ContestRequest is the body of both POST /addcontest and PUT /contest/:id
type ContestRequest struct {
	Name            string  `json:"name" binding:"required"`
	Image           string  `json:"image"`
	ContestPrice    float64 `json:"contestPrice"`
	PrizeMoney      float64 `json:"prizeMoney"`
	Details         string  `json:"details"`
	Instruction     string  `json:"instruction"`
	ContestCreator  string  `json:"contestCreator"`
	CreatedBy       string  `json:"createdBy"`
	Tag             string  `json:"tag"`
	Status          string  `json:"status"`
	Participation   int     `json:"participation"`
	ContestDeadline string  `json:"contestDeadline"`
}

func (r *ContestRequest) Contest() *models.Contest {
	return &models.Contest{
		Name:            r.Name,
		Image:           r.Image,
		ContestPrice:    r.ContestPrice,
		PrizeMoney:      r.PrizeMoney,
		Details:         r.Details,
		Instruction:     r.Instruction,
		ContestCreator:  r.ContestCreator,
		CreatedBy:       r.CreatedBy,
		Tag:             r.Tag,
		Status:          r.Status,
		Participation:   r.Participation,
		ContestDeadline: r.ContestDeadline,
	}
}

type CategoryQuery struct {
	Cat string `form:"cat"`
}

// PageQuery is the query of GET /usersAllContest
type PageQuery struct {
	Page int64  `form:"page,default=0" binding:"min=0"`
	Size int64  `form:"size,default=10" binding:"min=1"`
	Cat  string `form:"cat"`
}

type SearchQuery struct {
	Query string `form:"query"`
}
