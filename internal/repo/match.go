package repo

import (
	"context"
	"database/sql"
	"time"

	"github.com/crucial707/league-api/internal/models"
)

// MatchRepo persists matches.
type MatchRepo struct {
	DB *sql.DB
}

// NewMatchRepo returns a new MatchRepo.
func NewMatchRepo(db *sql.DB) *MatchRepo {
	return &MatchRepo{DB: db}
}

const matchSelect = `
	SELECT m.id, m.home_team_id, m.away_team_id, m.date_played, m.score_home, m.score_away,
	       ht.name, awt.name
	FROM matches m
	JOIN teams ht ON ht.id = m.home_team_id
	JOIN teams awt ON awt.id = m.away_team_id
`

func scanMatch(row interface{ Scan(...any) error }) (models.Match, error) {
	var (
		m                    models.Match
		scoreHome, scoreAway sql.NullInt64
	)
	err := row.Scan(&m.ID, &m.HomeTeamID, &m.AwayTeamID, &m.DatePlayed, &scoreHome, &scoreAway,
		&m.HomeTeamName, &m.AwayTeamName)
	if err != nil {
		return m, err
	}
	m.ScoreHome = intPtr(scoreHome)
	m.ScoreAway = intPtr(scoreAway)
	return m, nil
}

func (r *MatchRepo) query(ctx context.Context, q string, args ...any) ([]models.Match, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Create inserts a match and returns it with team names.
func (r *MatchRepo) Create(ctx context.Context, m models.Match) (models.Match, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO matches (home_team_id, away_team_id, date_played, score_home, score_away)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		m.HomeTeamID, m.AwayTeamID, m.DatePlayed, nullInt(m.ScoreHome), nullInt(m.ScoreAway),
	).Scan(&id)
	if err != nil {
		return models.Match{}, translate(err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns one match.
func (r *MatchRepo) GetByID(ctx context.Context, id int) (models.Match, error) {
	m, err := scanMatch(r.DB.QueryRowContext(ctx, matchSelect+` WHERE m.id = $1`, id))
	return m, translate(err)
}

// List returns all matches, most recent first.
func (r *MatchRepo) List(ctx context.Context) ([]models.Match, error) {
	return r.query(ctx, matchSelect+` ORDER BY m.date_played DESC`)
}

// Upcoming returns matches scheduled after now, soonest first.
func (r *MatchRepo) Upcoming(ctx context.Context, now time.Time) ([]models.Match, error) {
	return r.query(ctx, matchSelect+` WHERE m.date_played > $1 ORDER BY m.date_played ASC`, now)
}

// ListByTeam returns matches where the team played home or away.
func (r *MatchRepo) ListByTeam(ctx context.Context, teamID int) ([]models.Match, error) {
	return r.query(ctx, matchSelect+` WHERE m.home_team_id = $1 OR m.away_team_id = $1 ORDER BY m.date_played DESC`, teamID)
}

// Update overwrites a match's fields.
func (r *MatchRepo) Update(ctx context.Context, id int, m models.Match) (models.Match, error) {
	var updated int
	err := r.DB.QueryRowContext(ctx,
		`UPDATE matches
		 SET home_team_id = $1, away_team_id = $2, date_played = $3, score_home = $4, score_away = $5
		 WHERE id = $6
		 RETURNING id`,
		m.HomeTeamID, m.AwayTeamID, m.DatePlayed, nullInt(m.ScoreHome), nullInt(m.ScoreAway), id,
	).Scan(&updated)
	if err != nil {
		return models.Match{}, translate(err)
	}
	return r.GetByID(ctx, updated)
}

// Delete removes a match and, by cascade, its statistics.
func (r *MatchRepo) Delete(ctx context.Context, id int) error {
	return execAffectingOne(r.DB.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id))
}
