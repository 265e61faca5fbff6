package fixtures

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// New creates a new FixtureStore.
func New(db *sql.DB) FixtureStore {
	return &store{
		db: db,
	}
}

func (s *store) CreateRound(clubIDs []int) ([]Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(clubIDs) < 2 {
		return nil, fmt.Errorf("need at least two clubs to schedule a round, got %d", len(clubIDs))
	}

	var round int
	err := s.db.QueryRow("SELECT COALESCE(MAX(round), 0) + 1 FROM fixtures").Scan(&round)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	stmt, err := tx.Prepare(`
		INSERT INTO fixtures (id, round, home_club_id, away_club_id, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	defer stmt.Close()

	now := time.Now().UTC()
	var created []Fixture
	for i := 0; i+1 < len(clubIDs); i += 2 {
		f := Fixture{
			ID:         uuid.New().String(),
			Round:      round,
			HomeClubID: clubIDs[i],
			AwayClubID: clubIDs[i+1],
			Status:     StatusScheduled,
			CreatedAt:  now,
		}
		if _, err := stmt.Exec(f.ID, f.Round, f.HomeClubID, f.AwayClubID, string(f.Status), now.Unix()); err != nil {
			tx.Rollback()
			return nil, err
		}
		created = append(created, f)
	}
	if len(clubIDs)%2 != 0 {
		log.Info("Odd club count, last club gets a bye", "clubID", clubIDs[len(clubIDs)-1], "round", round)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	log.Info("Scheduled round", "round", round, "fixtures", len(created))
	return created, nil
}

func (s *store) GetRound(round int) ([]Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query("SELECT id, round, home_club_id, away_club_id, status, match_id, created_at FROM fixtures WHERE round = ? ORDER BY created_at", round)
}

func (s *store) GetPendingFixtures() ([]Fixture, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query("SELECT id, round, home_club_id, away_club_id, status, match_id, created_at FROM fixtures WHERE status = ? ORDER BY round, created_at", string(StatusScheduled))
}

func (s *store) MarkPlayed(fixtureID, matchID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec("UPDATE fixtures SET status = ?, match_id = ? WHERE id = ?", string(StatusPlayed), matchID, fixtureID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("fixture %s not found", fixtureID)
	}
	return nil
}

func (s *store) query(q string, args ...any) ([]Fixture, error) {
	rows, err := s.db.Query(q, args...)
	if err != nil {
		log.Error("Failed to query fixtures", "error", err)
		return nil, err
	}
	defer rows.Close()

	var out []Fixture
	for rows.Next() {
		var f Fixture
		var status string
		var matchID sql.NullString
		var createdAt int64
		if err := rows.Scan(&f.ID, &f.Round, &f.HomeClubID, &f.AwayClubID, &status, &matchID, &createdAt); err != nil {
			log.Error("Failed to scan fixture row", "error", err)
			continue
		}
		f.Status = Status(status)
		if matchID.Valid {
			f.MatchID = &matchID.String
		}
		f.CreatedAt = time.Unix(createdAt, 0).UTC()
		out = append(out, f)
	}
	return out, nil
}
