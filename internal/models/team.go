package models

type Team struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	CoachID   *int    `json:"coach_id"`
	CoachName *string `json:"coach_name,omitempty"`
}
