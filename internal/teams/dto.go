package teams

import "github.com/solvaders/clubhub/internal/shared"

type CreateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

type UpdateTeamRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description" validate:"max=1000"`
}

type AddMemberRequest struct {
	UserID   int64  `json:"user_id" validate:"required,gt=0"`
	Role     string `json:"role" validate:"required,oneof=player coach"`
	Position string `json:"position" validate:"max=100"`
}

type UpdateMemberRequest struct {
	Role     string `json:"role" validate:"required,oneof=player coach"`
	Position string `json:"position" validate:"max=100"`
}

// ListResponse pairs a page of teams with its pagination metadata.
type ListResponse struct {
	Teams      []Team            `json:"teams"`
	Pagination shared.Pagination `json:"pagination"`
}
