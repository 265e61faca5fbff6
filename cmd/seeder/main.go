package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dmoller/touchline/internal/club"
	"github.com/dmoller/touchline/internal/database"
	"github.com/dmoller/touchline/internal/football"
	"github.com/joho/godotenv"
)

var clubNames = []string{
	"Northbridge FC",
	"Easton United",
	"Harbour Town",
	"Millfield Rovers",
	"Westgate Athletic",
	"Crowhurst City",
	"Ashvale Wanderers",
	"Kingsport Albion",
}

var firstNames = []string{
	"Erik", "Tomas", "Marco", "Jonas", "Luka", "Mateo", "Oliver", "Felix",
	"Viktor", "Sami", "Andre", "Pavel", "Nico", "Jens", "Rafael", "Dario",
}

var lastNames = []string{
	"Holmqvist", "Lindgren", "Ferrante", "Bakker", "Kovac", "Silva",
	"Andersen", "Weber", "Novak", "Laine", "Moreau", "Horvat", "Berg",
	"Keller", "Santos", "Vidal",
}

// starterRoles is a plain 4-4-2, slot order GK first.
var starterRoles = []football.Role{
	football.RoleGK,
	football.RoleCB, football.RoleCB, football.RoleLB, football.RoleRB,
	football.RoleCM, football.RoleCM, football.RoleLM, football.RoleRM,
	football.RoleST, football.RoleST,
}

var benchRoles = []football.Role{
	football.RoleGK, football.RoleCB, football.RoleCDM, football.RoleCM,
	football.RoleCAM, football.RoleLW, football.RoleST,
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func main() {
	log.Info("Starting database seeder...")
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	dbName := envOr("DB_NAME", "touchline.db")
	migrationsDir := envOr("MIGRATIONS_DIR", "./migrations")
	db, teardown, err := database.InitDB(dbName, os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), migrationsDir)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	store := club.New(db)

	startTime := time.Now()
	for i, name := range clubNames {
		clubID := i + 1
		// The first club is the human-managed one.
		info := club.Info{ID: clubID, Name: name, Human: clubID == 1}
		if err := store.UpsertClub(info); err != nil {
			log.Fatalf("Failed to upsert club %s: %s", name, err)
		}

		// Stronger clubs sit earlier in the list.
		baseline := 72 - i*3
		players, tactics := buildSquad(rng, clubID, baseline)
		if err := store.UpsertPlayers(clubID, players); err != nil {
			log.Fatalf("Failed to upsert players for %s: %s", name, err)
		}
		if err := store.SaveTactics(clubID, tactics); err != nil {
			log.Fatalf("Failed to save tactics for %s: %s", name, err)
		}
		log.Info("Seeded club", "club", name, "players", len(players), "human", info.Human)
	}

	log.Info("Seeding finished.", "clubs", len(clubNames), "duration", time.Since(startTime))
}

// buildSquad generates 18 players around a baseline skill level and a
// matching 4-4-2 with a full bench.
func buildSquad(rng *rand.Rand, clubID, baseline int) ([]*football.Player, football.Tactics) {
	var players []*football.Player
	tactics := football.Tactics{Mentality: football.MentalityBalanced}

	roles := append(append([]football.Role{}, starterRoles...), benchRoles...)
	for i, role := range roles {
		id := clubID*1000 + i + 1
		p := &football.Player{
			ID:           id,
			Name:         fmt.Sprintf("%s %s", firstNames[rng.Intn(len(firstNames))], lastNames[rng.Intn(len(lastNames))]),
			NaturalRole:  role,
			Attributes:   randomAttributes(rng, role, baseline),
			Familiarity:  randomFamiliarity(rng, role),
			Morale:       60 + rng.Intn(30),
			MatchFitness: 70 + rng.Intn(30),
		}
		players = append(players, p)

		slot := &football.LineupPlayer{
			PlayerID:     id,
			Role:         role,
			Instructions: football.DefaultInstructions(),
		}
		if i < len(starterRoles) {
			tactics.Lineup[i] = slot
		} else {
			tactics.Bench[i-len(starterRoles)] = slot
		}
	}
	return players, tactics
}

// randomAttributes spreads scores around the baseline, lifting the
// stats that matter for the player's positional band.
func randomAttributes(rng *rand.Rand, role football.Role, baseline int) football.Attributes {
	roll := func(bonus int) int {
		v := baseline + bonus + rng.Intn(21) - 10
		if v < 20 {
			v = 20
		}
		if v > 95 {
			v = 95
		}
		return v
	}

	attackBonus, defendBonus := 0, 0
	switch football.CategoryOf(role) {
	case football.CategoryGoalkeeper, football.CategoryDefender:
		defendBonus = 8
		attackBonus = -6
	case football.CategoryForward:
		attackBonus = 8
		defendBonus = -6
	}

	return football.Attributes{
		Passing:        roll(0),
		Dribbling:      roll(attackBonus),
		Shooting:       roll(attackBonus),
		Tackling:       roll(defendBonus),
		Heading:        roll(0),
		Crossing:       roll(0),
		Aggression:     roll(0),
		Creativity:     roll(attackBonus),
		Positioning:    roll(defendBonus),
		Teamwork:       roll(0),
		WorkRate:       roll(0),
		Pace:           roll(0),
		Stamina:        roll(0),
		Strength:       roll(0),
		NaturalFitness: roll(0),
	}
}

// randomFamiliarity gives a player partial affinity for one or two
// other roles in the same positional band.
func randomFamiliarity(rng *rand.Rand, natural football.Role) map[football.Role]int {
	fam := map[football.Role]int{}
	for _, role := range football.RolesInCategory(football.CategoryOf(natural)) {
		if role == natural {
			continue
		}
		if rng.Intn(2) == 0 {
			fam[role] = 30 + rng.Intn(60)
		}
	}
	return fam
}
