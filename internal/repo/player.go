package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/league-api/internal/models"
)

// PlayerRepo persists players.
type PlayerRepo struct {
	DB *sql.DB
}

// NewPlayerRepo returns a new PlayerRepo.
func NewPlayerRepo(db *sql.DB) *PlayerRepo {
	return &PlayerRepo{DB: db}
}

const playerSelect = `
	SELECT p.id, p.first_name, p.last_name, p.position, p.team_id, t.name
	FROM players p
	LEFT JOIN teams t ON t.id = p.team_id
`

func scanPlayer(row interface{ Scan(...any) error }) (models.Player, error) {
	var (
		p        models.Player
		teamName sql.NullString
	)
	if err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Position, &p.TeamID, &teamName); err != nil {
		return p, err
	}
	p.TeamName = stringPtr(teamName)
	return p, nil
}

func (r *PlayerRepo) query(ctx context.Context, q string, args ...any) ([]models.Player, error) {
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := []models.Player{}
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// Create inserts a player and returns it with its team name.
func (r *PlayerRepo) Create(ctx context.Context, p models.Player) (models.Player, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO players (first_name, last_name, position, team_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		p.FirstName, p.LastName, p.Position, p.TeamID,
	).Scan(&id)
	if err != nil {
		return models.Player{}, translate(err)
	}
	return r.GetByID(ctx, id)
}

// GetByID returns one player.
func (r *PlayerRepo) GetByID(ctx context.Context, id int) (models.Player, error) {
	p, err := scanPlayer(r.DB.QueryRowContext(ctx, playerSelect+` WHERE p.id = $1`, id))
	return p, translate(err)
}

// List returns all players ordered by last then first name.
func (r *PlayerRepo) List(ctx context.Context) ([]models.Player, error) {
	return r.query(ctx, playerSelect+` ORDER BY p.last_name, p.first_name`)
}

// ListByTeam returns the roster of a team.
func (r *PlayerRepo) ListByTeam(ctx context.Context, teamID int) ([]models.Player, error) {
	return r.query(ctx, playerSelect+` WHERE p.team_id = $1 ORDER BY p.last_name, p.first_name`, teamID)
}

// Update overwrites a player's fields.
func (r *PlayerRepo) Update(ctx context.Context, id int, p models.Player) (models.Player, error) {
	var updated int
	err := r.DB.QueryRowContext(ctx,
		`UPDATE players
		 SET first_name = $1, last_name = $2, position = $3, team_id = $4
		 WHERE id = $5
		 RETURNING id`,
		p.FirstName, p.LastName, p.Position, p.TeamID, id,
	).Scan(&updated)
	if err != nil {
		return models.Player{}, translate(err)
	}
	return r.GetByID(ctx, updated)
}

// Delete removes a player and, by cascade, its statistics.
func (r *PlayerRepo) Delete(ctx context.Context, id int) error {
	return execAffectingOne(r.DB.ExecContext(ctx, `DELETE FROM players WHERE id = $1`, id))
}
