package repo

import (
	"context"
	"database/sql"

	"github.com/crucial707/league-api/internal/models"
)

// ========================
// REPOSITORY STRUCT
// ========================

type TeamRepo struct {
	DB *sql.DB
}

func NewTeamRepo(db *sql.DB) *TeamRepo {
	return &TeamRepo{DB: db}
}

const teamSelect = `
	SELECT t.id, t.name, t.city, t.coach_id, u.username
	FROM teams t
	LEFT JOIN users u ON u.id = t.coach_id
`

func scanTeam(row interface{ Scan(...any) error }) (models.Team, error) {
	var (
		t         models.Team
		coachID   sql.NullInt64
		coachName sql.NullString
	)
	if err := row.Scan(&t.ID, &t.Name, &t.City, &coachID, &coachName); err != nil {
		return t, err
	}
	t.CoachID = intPtr(coachID)
	t.CoachName = stringPtr(coachName)
	return t, nil
}

// ========================
// CREATE TEAM
// ========================

func (r *TeamRepo) Create(ctx context.Context, name, city string, coachID *int) (models.Team, error) {
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO teams (name, city, coach_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		name, city, nullInt(coachID),
	).Scan(&id)
	if err != nil {
		return models.Team{}, translate(err)
	}
	return r.GetByID(ctx, id)
}

// ========================
// GET TEAM BY ID
// ========================

func (r *TeamRepo) GetByID(ctx context.Context, id int) (models.Team, error) {
	t, err := scanTeam(r.DB.QueryRowContext(ctx, teamSelect+` WHERE t.id = $1`, id))
	return t, translate(err)
}

// ========================
// LIST TEAMS (by name)
// ========================

func (r *TeamRepo) List(ctx context.Context) ([]models.Team, error) {
	rows, err := r.DB.QueryContext(ctx, teamSelect+` ORDER BY t.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := []models.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		teams = append(teams, t)
	}
	return teams, rows.Err()
}

// ========================
// UPDATE TEAM BY ID
// ========================

func (r *TeamRepo) UpdateByID(ctx context.Context, id int, name, city string, coachID *int) (models.Team, error) {
	var updated int
	err := r.DB.QueryRowContext(ctx,
		`UPDATE teams
		 SET name = $1, city = $2, coach_id = $3
		 WHERE id = $4
		 RETURNING id`,
		name, city, nullInt(coachID), id,
	).Scan(&updated)
	if err != nil {
		return models.Team{}, translate(err)
	}
	return r.GetByID(ctx, updated)
}

// ========================
// DELETE TEAM BY ID
// ========================

func (r *TeamRepo) DeleteByID(ctx context.Context, id int) error {
	return execAffectingOne(r.DB.ExecContext(ctx, "DELETE FROM teams WHERE id = $1", id))
}
