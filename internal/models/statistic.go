package models

import "time"

// EventGoal is the event type counted by the top scorers table.
const EventGoal = "goal"

// Statistic is a single in-match event (goal, assist, card, ...) by a player.
type Statistic struct {
	ID        int    `json:"id"`
	MatchID   int    `json:"match_id"`
	PlayerID  int    `json:"player_id"`
	EventType string `json:"event_type"`
	Minute    int    `json:"minute"`

	// Joined context, filled depending on the query.
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	TeamName     string     `json:"team_name,omitempty"`
	DatePlayed   *time.Time `json:"date_played,omitempty"`
	HomeTeamID   int        `json:"home_team_id,omitempty"`
	AwayTeamID   int        `json:"away_team_id,omitempty"`
	HomeTeamName string     `json:"home_team_name,omitempty"`
	AwayTeamName string     `json:"away_team_name,omitempty"`
}

// TopScorer is one row of the goals leaderboard.
type TopScorer struct {
	PlayerID  int    `json:"player_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Position  string `json:"position"`
	TeamID    int    `json:"team_id"`
	TeamName  string `json:"team_name"`
	Goals     int    `json:"goals"`
}
