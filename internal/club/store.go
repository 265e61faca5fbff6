package club

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dmoller/touchline/internal/football"
	"github.com/dmoller/touchline/internal/match"
	"github.com/vmihailenco/msgpack/v5"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// UpsertClub inserts a club or updates its name and human flag.
func (s *store) UpsertClub(info Info) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	human := 0
	if info.Human {
		human = 1
	}
	_, err := s.db.Exec(`
		INSERT INTO clubs (id, name, human) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			human = excluded.human;
	`, info.ID, info.Name, human)
	return err
}

func (s *store) GetClub(clubID int) (*Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var info Info
	var human int
	err := s.db.QueryRow("SELECT id, name, human FROM clubs WHERE id = ?", clubID).Scan(&info.ID, &info.Name, &human)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("club %d not found", clubID)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	info.Human = human != 0
	return &info, nil
}

func (s *store) GetAllClubs() ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query("SELECT id, name, human FROM clubs ORDER BY name")
	if err != nil {
		log.Error("Failed to query all clubs", "error", err)
		return nil, err
	}
	defer rows.Close()

	var clubs []Info
	for rows.Next() {
		var info Info
		var human int
		if err := rows.Scan(&info.ID, &info.Name, &human); err != nil {
			log.Error("Failed to scan club row", "error", err)
			continue
		}
		info.Human = human != 0
		clubs = append(clubs, info)
	}
	return clubs, nil
}

// UpsertPlayers writes a club's player records, attributes and role
// familiarity packed as blobs.
func (s *store) UpsertPlayers(clubID int, players []*football.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO players (id, club_id, name, natural_role, attributes_blob, familiarity_blob)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			club_id = excluded.club_id,
			name = excluded.name,
			natural_role = excluded.natural_role,
			attributes_blob = excluded.attributes_blob,
			familiarity_blob = excluded.familiarity_blob;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		attrsBlob, err := msgpack.Marshal(p.Attributes)
		if err != nil {
			tx.Rollback()
			return err
		}
		famBlob, err := msgpack.Marshal(p.Familiarity)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.Exec(p.ID, clubID, p.Name, string(p.NaturalRole), attrsBlob, famBlob); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

// SaveTactics stores a club's current lineup, bench and mentality.
func (s *store) SaveTactics(clubID int, tactics football.Tactics) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lineupBlob, err := msgpack.Marshal(tactics.Lineup)
	if err != nil {
		return err
	}
	benchBlob, err := msgpack.Marshal(tactics.Bench)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO club_tactics (club_id, mentality, lineup_blob, bench_blob)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(club_id) DO UPDATE SET
			mentality = excluded.mentality,
			lineup_blob = excluded.lineup_blob,
			bench_blob = excluded.bench_blob;
	`, clubID, string(tactics.Mentality), lineupBlob, benchBlob)
	return err
}

// GetSquad assembles a club's full engine input: club row, player
// records and saved tactics.
func (s *store) GetSquad(clubID int) (football.Squad, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var squad football.Squad

	var human int
	err := s.db.QueryRow("SELECT id, name, human FROM clubs WHERE id = ?", clubID).
		Scan(&squad.Club.ID, &squad.Club.Name, &human)
	if err != nil {
		if err == sql.ErrNoRows {
			return squad, fmt.Errorf("club %d not found", clubID)
		}
		return squad, fmt.Errorf("database error: %w", err)
	}
	squad.Club.Human = human != 0

	rows, err := s.db.Query("SELECT id, name, natural_role, attributes_blob, familiarity_blob FROM players WHERE club_id = ?", clubID)
	if err != nil {
		return squad, err
	}
	defer rows.Close()

	squad.Players = make(map[int]*football.Player)
	for rows.Next() {
		var p football.Player
		var role string
		var attrsBlob, famBlob []byte
		if err := rows.Scan(&p.ID, &p.Name, &role, &attrsBlob, &famBlob); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.NaturalRole = football.Role(role)
		if len(attrsBlob) > 0 {
			if err := msgpack.Unmarshal(attrsBlob, &p.Attributes); err != nil {
				log.Error("Failed to unmarshal attributes blob", "error", err, "playerID", p.ID)
			}
		}
		if len(famBlob) > 0 {
			if err := msgpack.Unmarshal(famBlob, &p.Familiarity); err != nil {
				log.Error("Failed to unmarshal familiarity blob", "error", err, "playerID", p.ID)
			}
		}
		squad.Players[p.ID] = &p
	}

	var mentality string
	var lineupBlob, benchBlob []byte
	err = s.db.QueryRow("SELECT mentality, lineup_blob, bench_blob FROM club_tactics WHERE club_id = ?", clubID).
		Scan(&mentality, &lineupBlob, &benchBlob)
	switch {
	case err == sql.ErrNoRows:
		squad.Tactics.Mentality = football.MentalityBalanced
		return squad, nil
	case err != nil:
		return squad, err
	}
	squad.Tactics.Mentality = football.Mentality(mentality)
	if len(lineupBlob) > 0 {
		if err := msgpack.Unmarshal(lineupBlob, &squad.Tactics.Lineup); err != nil {
			log.Error("Failed to unmarshal lineup blob", "error", err, "clubID", clubID)
		}
	}
	if len(benchBlob) > 0 {
		if err := msgpack.Unmarshal(benchBlob, &squad.Tactics.Bench); err != nil {
			log.Error("Failed to unmarshal bench blob", "error", err, "clubID", clubID)
		}
	}
	return squad, nil
}

// SaveMatch persists a finished match record. The upsert is "dumb": a
// re-save overwrites every field.
func (s *store) SaveMatch(rec *match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	blobs := make([][]byte, 0, 7)
	for _, v := range []any{rec.HomeStats, rec.AwayStats, rec.Events, rec.PlayerStats, rec.Cards, rec.Injuries} {
		b, err := msgpack.Marshal(v)
		if err != nil {
			return err
		}
		blobs = append(blobs, b)
	}
	homeLineupBlob, err := msgpack.Marshal(rec.HomeLineup)
	if err != nil {
		return err
	}
	awayLineupBlob, err := msgpack.Marshal(rec.AwayLineup)
	if err != nil {
		return err
	}

	var homeScore, awayScore any
	if rec.HomeScore != nil {
		homeScore = *rec.HomeScore
	}
	if rec.AwayScore != nil {
		awayScore = *rec.AwayScore
	}

	_, err = s.db.Exec(`
		INSERT INTO matches (id, home_club_id, away_club_id, match_date, home_score, away_score,
			home_stats_blob, away_stats_blob, events_blob, player_stats_blob, cards_blob, injuries_blob,
			home_lineup_blob, away_lineup_blob)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			home_club_id = excluded.home_club_id,
			away_club_id = excluded.away_club_id,
			match_date = excluded.match_date,
			home_score = excluded.home_score,
			away_score = excluded.away_score,
			home_stats_blob = excluded.home_stats_blob,
			away_stats_blob = excluded.away_stats_blob,
			events_blob = excluded.events_blob,
			player_stats_blob = excluded.player_stats_blob,
			cards_blob = excluded.cards_blob,
			injuries_blob = excluded.injuries_blob,
			home_lineup_blob = excluded.home_lineup_blob,
			away_lineup_blob = excluded.away_lineup_blob;
	`, rec.ID, rec.HomeClubID, rec.AwayClubID, rec.Date.Unix(), homeScore, awayScore,
		blobs[0], blobs[1], blobs[2], blobs[3], blobs[4], blobs[5], homeLineupBlob, awayLineupBlob)
	return err
}

func (s *store) GetMatch(matchID string) (*match.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`
		SELECT id, home_club_id, away_club_id, match_date, home_score, away_score,
			home_stats_blob, away_stats_blob, events_blob, player_stats_blob, cards_blob, injuries_blob,
			home_lineup_blob, away_lineup_blob
		FROM matches WHERE id = ?
	`, matchID)
	rec, err := s.scanMatch(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("match %s not found", matchID)
		}
		return nil, err
	}
	return rec, nil
}

func (s *store) GetAllMatches() ([]*match.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT id, home_club_id, away_club_id, match_date, home_score, away_score,
			home_stats_blob, away_stats_blob, events_blob, player_stats_blob, cards_blob, injuries_blob,
			home_lineup_blob, away_lineup_blob
		FROM matches ORDER BY match_date DESC
	`)
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	var matches []*match.Match
	for rows.Next() {
		rec, err := s.scanMatch(rows)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, rec)
	}
	return matches, nil
}

// scanMatch is a helper function to scan a single match row.
func (s *store) scanMatch(scanner interface{ Scan(...any) error }) (*match.Match, error) {
	var rec match.Match
	var date int64
	var homeScore, awayScore sql.NullInt64
	var homeStats, awayStats, events, playerStats, cards, injuries, homeLineup, awayLineup []byte

	err := scanner.Scan(
		&rec.ID, &rec.HomeClubID, &rec.AwayClubID, &date, &homeScore, &awayScore,
		&homeStats, &awayStats, &events, &playerStats, &cards, &injuries,
		&homeLineup, &awayLineup,
	)
	if err != nil {
		return nil, err
	}
	rec.Date = unixDate(date)

	if homeScore.Valid {
		v := int(homeScore.Int64)
		rec.HomeScore = &v
	}
	if awayScore.Valid {
		v := int(awayScore.Int64)
		rec.AwayScore = &v
	}

	for _, pair := range []struct {
		blob []byte
		dst  any
	}{
		{homeStats, &rec.HomeStats},
		{awayStats, &rec.AwayStats},
		{events, &rec.Events},
		{playerStats, &rec.PlayerStats},
		{cards, &rec.Cards},
		{injuries, &rec.Injuries},
		{homeLineup, &rec.HomeLineup},
		{awayLineup, &rec.AwayLineup},
	} {
		if len(pair.blob) == 0 {
			continue
		}
		if err := msgpack.Unmarshal(pair.blob, pair.dst); err != nil {
			log.Error("Failed to unmarshal match blob", "error", err, "matchID", rec.ID)
		}
	}
	return &rec, nil
}

// ApplySeasonStats folds a finished match into the season-long
// per-player tallies. Safe to call once per match only.
func (s *store) ApplySeasonStats(rec *match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	type tally struct {
		appearances, goals, assists, yellows, reds, injuries int
		ratingSum                                            float64
	}
	tallies := make(map[int]*tally)
	get := func(playerID int) *tally {
		t, ok := tallies[playerID]
		if !ok {
			t = &tally{}
			tallies[playerID] = t
		}
		return t
	}

	for playerID, ps := range rec.PlayerStats {
		t := get(playerID)
		t.appearances++
		t.goals += ps.Goals
		t.assists += ps.Assists
		t.ratingSum += ps.Rating
	}
	for _, card := range rec.Cards {
		t := get(card.PlayerID)
		if card.Card == match.CardRed {
			t.reds++
		} else {
			t.yellows++
		}
	}
	for _, inj := range rec.Injuries {
		get(inj.PlayerID).injuries++
	}

	stmt, err := tx.Prepare(`
		INSERT INTO season_player_stats (player_id, appearances, goals, assists, yellow_cards, red_cards, injuries, rating_sum)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(player_id) DO UPDATE SET
			appearances = appearances + excluded.appearances,
			goals = goals + excluded.goals,
			assists = assists + excluded.assists,
			yellow_cards = yellow_cards + excluded.yellow_cards,
			red_cards = red_cards + excluded.red_cards,
			injuries = injuries + excluded.injuries,
			rating_sum = rating_sum + excluded.rating_sum;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for playerID, t := range tallies {
		if _, err := stmt.Exec(playerID, t.appearances, t.goals, t.assists, t.yellows, t.reds, t.injuries, t.ratingSum); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (s *store) GetSeasonStats() ([]SeasonPlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT
			sps.player_id,
			p.name,
			sps.appearances,
			sps.goals,
			sps.assists,
			sps.yellow_cards,
			sps.red_cards,
			sps.injuries,
			sps.rating_sum
		FROM season_player_stats sps
		JOIN players p ON sps.player_id = p.id
		ORDER BY sps.goals DESC, sps.assists DESC, sps.rating_sum DESC;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stats []SeasonPlayerStats
	for rows.Next() {
		stat, err := scanSeasonStats(rows)
		if err != nil {
			return nil, err
		}
		stats = append(stats, *stat)
	}
	return stats, nil
}

// GetSeasonStatsByName retrieves the season statistics for a single
// player by name. The search is case-insensitive and fuzzy, so
// "holmqvist" will match "Erik Holmqvist".
func (s *store) GetSeasonStatsByName(playerName string) (*SeasonPlayerStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT
			p.id,
			p.name,
			COALESCE(sps.appearances, 0),
			COALESCE(sps.goals, 0),
			COALESCE(sps.assists, 0),
			COALESCE(sps.yellow_cards, 0),
			COALESCE(sps.red_cards, 0),
			COALESCE(sps.injuries, 0),
			COALESCE(sps.rating_sum, 0)
		FROM players p
		LEFT JOIN season_player_stats sps ON p.id = sps.player_id
		WHERE p.name LIKE ? COLLATE NOCASE
		LIMIT 1
	`
	pattern := "%" + playerName + "%"
	stat, err := scanSeasonStats(s.db.QueryRow(query, pattern))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("No stats found for player matching pattern", "pattern", pattern)
			return nil, fmt.Errorf("player matching '%s' not found", playerName)
		}
		log.Error("Failed to query season stats by name", "error", err, "pattern", pattern)
		return nil, fmt.Errorf("database error: %w", err)
	}
	return stat, nil
}

func scanSeasonStats(scanner interface{ Scan(...any) error }) (*SeasonPlayerStats, error) {
	var stat SeasonPlayerStats
	var ratingSum float64
	err := scanner.Scan(
		&stat.PlayerID,
		&stat.PlayerName,
		&stat.Appearances,
		&stat.Goals,
		&stat.Assists,
		&stat.YellowCards,
		&stat.RedCards,
		&stat.Injuries,
		&ratingSum,
	)
	if err != nil {
		return nil, err
	}
	if stat.Appearances > 0 {
		stat.AverageRating = ratingSum / float64(stat.Appearances)
	}
	return &stat, nil
}

func (s *store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return
	}

	for _, table := range []string{"matches", "season_player_stats", "fixtures", "club_tactics", "players", "clubs", "metrics"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			log.Error("Failed to clear table", "error", err, "table", table)
			tx.Rollback()
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("Failed to commit transaction for clearing store", "error", err)
	}
}

func unixDate(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

func (s *store) ClearMatch(matchID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM matches WHERE id = ?", matchID)
	if err != nil {
		log.Error("Failed to clear match", "error", err, "matchID", matchID)
	}
}
