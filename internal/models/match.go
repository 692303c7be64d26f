package models

import "time"

// Match is a fixture between two teams. Scores stay nil until it is played.
type Match struct {
	ID           int       `json:"id"`
	HomeTeamID   int       `json:"home_team_id"`
	AwayTeamID   int       `json:"away_team_id"`
	DatePlayed   time.Time `json:"date_played"`
	ScoreHome    *int      `json:"score_home"`
	ScoreAway    *int      `json:"score_away"`
	HomeTeamName string    `json:"home_team_name,omitempty"`
	AwayTeamName string    `json:"away_team_name,omitempty"`
}
