package models

type Player struct {
	ID        int     `json:"id"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Position  string  `json:"position"`
	TeamID    int     `json:"team_id"`
	TeamName  *string `json:"team_name,omitempty"`
}
