package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

var teamCols = []string{"id", "name", "city", "coach_id", "username"}

func TestTeamRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	coach := 4
	mock.ExpectQuery(`INSERT INTO teams \(name, city, coach_id\)`).
		WithArgs("Lions", "Sarajevo", 4).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(10))
	mock.ExpectQuery(`SELECT t.id, t.name, t.city, t.coach_id, u.username`).
		WithArgs(10).
		WillReturnRows(sqlmock.NewRows(teamCols).AddRow(10, "Lions", "Sarajevo", 4, "coachy"))

	team, err := NewTeamRepo(db).Create(context.Background(), "Lions", "Sarajevo", &coach)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if team.ID != 10 || team.CoachID == nil || *team.CoachID != 4 || team.CoachName == nil || *team.CoachName != "coachy" {
		t.Errorf("unexpected team: %+v", team)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTeamRepo_Create_UnknownCoach(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	coach := 99
	mock.ExpectQuery(`INSERT INTO teams`).
		WithArgs("Lions", "", 99).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "teams_coach_id_fkey"})

	_, err = NewTeamRepo(db).Create(context.Background(), "Lions", "", &coach)
	if !errors.Is(err, ErrInvalidReference) {
		t.Fatalf("expected ErrInvalidReference, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTeamRepo_List_NoCoach(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT t.id, t.name, t.city, t.coach_id, u.username .* ORDER BY t.name`).
		WillReturnRows(sqlmock.NewRows(teamCols).
			AddRow(1, "Bears", "Mostar", nil, nil).
			AddRow(2, "Lions", "Sarajevo", 3, "coachy"))

	teams, err := NewTeamRepo(db).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %d", len(teams))
	}
	if teams[0].CoachID != nil || teams[0].CoachName != nil {
		t.Errorf("expected no coach on first team: %+v", teams[0])
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestTeamRepo_DeleteByID_StillReferenced(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`DELETE FROM teams WHERE id = \$1`).
		WithArgs(1).
		WillReturnError(&pq.Error{Code: "23503", Constraint: "players_team_id_fkey"})

	if err := NewTeamRepo(db).DeleteByID(context.Background(), 1); !errors.Is(err, ErrInvalidReference) {
		t.Errorf("expected ErrInvalidReference, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
