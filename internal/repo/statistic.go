package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/league-api/internal/models"
)

// DefaultTopScorersLimit is used when the caller passes a non-positive limit.
const DefaultTopScorersLimit = 10

// StatisticRepo persists match events.
type StatisticRepo struct {
	DB *sql.DB
}

// NewStatisticRepo returns a new StatisticRepo.
func NewStatisticRepo(db *sql.DB) *StatisticRepo {
	return &StatisticRepo{DB: db}
}

const statisticSelect = `
	SELECT s.id, s.match_id, s.player_id, s.event_type, s.minute,
	       p.first_name, p.last_name, pt.name,
	       m.date_played, m.home_team_id, m.away_team_id, ht.name, awt.name
	FROM statistics s
	JOIN players p ON p.id = s.player_id
	LEFT JOIN teams pt ON pt.id = p.team_id
	JOIN matches m ON m.id = s.match_id
	JOIN teams ht ON ht.id = m.home_team_id
	JOIN teams awt ON awt.id = m.away_team_id
`

func scanStatistic(row interface{ Scan(...any) error }) (models.Statistic, error) {
	var (
		s          models.Statistic
		teamName   sql.NullString
		datePlayed sql.NullTime
	)
	err := row.Scan(&s.ID, &s.MatchID, &s.PlayerID, &s.EventType, &s.Minute,
		&s.FirstName, &s.LastName, &teamName,
		&datePlayed, &s.HomeTeamID, &s.AwayTeamID, &s.HomeTeamName, &s.AwayTeamName)
	if err != nil {
		return s, err
	}
	s.TeamName = teamName.String
	if datePlayed.Valid {
		t := datePlayed.Time
		s.DatePlayed = &t
	}
	return s, nil
}

func (r *StatisticRepo) query(ctx context.Context, q string, args ...any) ([]models.Statistic, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []models.Statistic{}
	for rows.Next() {
		s, err := scanStatistic(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Create inserts an event and returns it with its joined context.
func (r *StatisticRepo) Create(ctx context.Context, s models.Statistic) (models.Statistic, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO statistics (match_id, player_id, event_type, minute)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		s.MatchID, s.PlayerID, s.EventType, s.Minute,
	).Scan(&id)
	if err != nil {
		return models.Statistic{}, translate(err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns one event.
func (r *StatisticRepo) GetByID(ctx context.Context, id int) (models.Statistic, error) {
	s, err := scanStatistic(r.DB.QueryRowContext(ctx, statisticSelect+` WHERE s.id = $1`, id))
	return s, translate(err)
}

// List returns all events, most recent match first.
func (r *StatisticRepo) List(ctx context.Context) ([]models.Statistic, error) {
	return r.query(ctx, statisticSelect+` ORDER BY m.date_played DESC, s.minute`)
}

// ListByMatch returns the events of one match in minute order.
func (r *StatisticRepo) ListByMatch(ctx context.Context, matchID int) ([]models.Statistic, error) {
	return r.query(ctx, statisticSelect+` WHERE s.match_id = $1 ORDER BY s.minute`, matchID)
}

// ListByPlayer returns the events of one player, most recent match first.
func (r *StatisticRepo) ListByPlayer(ctx context.Context, playerID int) ([]models.Statistic, error) {
	return r.query(ctx, statisticSelect+` WHERE s.player_id = $1 ORDER BY m.date_played DESC, s.minute`, playerID)
}

// Update overwrites an event's fields.
func (r *StatisticRepo) Update(ctx context.Context, id int, s models.Statistic) (models.Statistic, error) {
	var updated int
	err := r.DB.QueryRowContext(ctx,
		`UPDATE statistics
		 SET match_id = $1, player_id = $2, event_type = $3, minute = $4
		 WHERE id = $5
		 RETURNING id`,
		s.MatchID, s.PlayerID, s.EventType, s.Minute, id,
	).Scan(&updated)
	if err != nil {
		return models.Statistic{}, translate(err)
	}
	return r.GetByID(ctx, updated)
}

// Delete removes an event.
func (r *StatisticRepo) Delete(ctx context.Context, id int) error {
	return execAffectingOne(r.DB.ExecContext(ctx, `DELETE FROM statistics WHERE id = $1`, id))
}

// TopScorers ranks players by number of goal events.
func (r *StatisticRepo) TopScorers(ctx context.Context, limit int) ([]models.TopScorer, error) {
	if limit <= 0 {
		limit = DefaultTopScorersLimit
	}
	rows, err := r.DB.QueryContext(ctx, `
		SELECT p.id, p.first_name, p.last_name, p.position, p.team_id, t.name, COUNT(*) AS goals
		FROM statistics s
		JOIN players p ON p.id = s.player_id
		JOIN teams t ON t.id = p.team_id
		WHERE s.event_type = $1
		GROUP BY p.id, t.name
		ORDER BY goals DESC, p.last_name
		LIMIT $2
	`, models.EventGoal, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.TopScorer{}
	for rows.Next() {
		var ts models.TopScorer
		if err := rows.Scan(&ts.PlayerID, &ts.FirstName, &ts.LastName, &ts.Position, &ts.TeamID, &ts.TeamName, &ts.Goals); err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, rows.Err()
}
