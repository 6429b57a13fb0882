package main

import (
	"database/sql"
	"fmt"
	"math/rand"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/rhotertj/ndv-elo/internal/database"
)

// Seeds a local database with a small demo league so the web application
// has something to render.
func main() {
	log.Info("Starting database seeder...")

	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}
	dbName, ok := os.LookupEnv("DB_NAME")
	if !ok {
		log.Fatalf("Error: Required environment variable DB_NAME is not set.")
	}

	db, teardown, err := database.InitDB(dbName, "", "", "./migrations")
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	if err := seedLeague(tx); err != nil {
		tx.Rollback()
		log.Fatalf("Failed to seed league: %s", err)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit seed transaction: %s", err)
	}
	log.Info("Seeding complete.")
}

func seedLeague(tx *sql.Tx) error {
	clubs := []string{"DC Adler", "DC Falken", "Dart Akademie", "Treffpunkt 180"}
	clubIDs := make(map[string]int64, len(clubs))
	for _, name := range clubs {
		res, err := tx.Exec("INSERT OR IGNORE INTO club_table (name) VALUES (?)", name)
		if err != nil {
			return fmt.Errorf("failed to insert club %s: %w", name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		clubIDs[name] = id
	}
	log.Info("Ensured demo clubs exist.", "count", len(clubs))

	res, err := tx.Exec(
		"INSERT INTO competition_table (name, association, year) VALUES (?, ?, ?)",
		"Bezirksliga 2", "NDV", "2023-08-01",
	)
	if err != nil {
		return fmt.Errorf("failed to insert competition: %w", err)
	}
	competitionID, err := res.LastInsertId()
	if err != nil {
		return err
	}

	names := []string{
		"Alex Schmidt", "Birgit Krause", "Can Yilmaz", "Doris Weber",
		"Emre Aydin", "Frauke Petersen", "Gerd Lehmann", "Hanna Busch",
	}

	playerIDs := make([]int64, 0, len(names))
	for i, name := range names {
		humanID := uuid.New().String()
		if _, err := tx.Exec("INSERT INTO human_table (id, name) VALUES (?, ?)", humanID, name); err != nil {
			return fmt.Errorf("failed to insert human %s: %w", name, err)
		}

		club := clubs[i%len(clubs)]
		res, err := tx.Exec(
			"INSERT INTO player_table (human, club, association_id) VALUES (?, ?, ?)",
			humanID, clubIDs[club], fmt.Sprintf("NDV-%04d", 1000+i),
		)
		if err != nil {
			return fmt.Errorf("failed to insert player for %s: %w", name, err)
		}
		playerID, err := res.LastInsertId()
		if err != nil {
			return err
		}
		playerIDs = append(playerIDs, playerID)

		mu := 20 + rand.Float64()*10
		sigma := 2 + rand.Float64()*4
		if _, err := tx.Exec(
			"INSERT INTO skillrating_table (player, competition, rating_mu, rating_sigma, latest_update) VALUES (?, ?, ?, ?, ?)",
			playerID, competitionID, mu, sigma, "2023-11-01",
		); err != nil {
			return fmt.Errorf("failed to insert rating for %s: %w", name, err)
		}
	}
	log.Info("Inserted demo players with ratings.", "count", len(playerIDs))

	teamIDs := make([]int64, 0, len(clubs))
	for i, name := range clubs {
		res, err := tx.Exec(
			"INSERT INTO team_table (rank, club, year, competition) VALUES (?, ?, ?, ?)",
			fmt.Sprintf("%d", i+1), clubIDs[name], "2023-08-01", competitionID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert team for %s: %w", name, err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		teamIDs = append(teamIDs, id)
	}

	matchdays := []string{"2023-09-15", "2023-10-13", "2023-11-10"}
	for round, date := range matchdays {
		res, err := tx.Exec(
			"INSERT INTO teammatch_table (date, competition, result, home_team, away_team) VALUES (?, ?, ?, ?, ?)",
			date, competitionID, "6:2", teamIDs[round%len(teamIDs)], teamIDs[(round+1)%len(teamIDs)],
		)
		if err != nil {
			return fmt.Errorf("failed to insert team match on %s: %w", date, err)
		}
		teamMatchID, err := res.LastInsertId()
		if err != nil {
			return err
		}

		for n := 0; n < 4; n++ {
			home := playerIDs[rand.Intn(len(playerIDs))]
			away := playerIDs[rand.Intn(len(playerIDs))]
			for away == home {
				away = playerIDs[rand.Intn(len(playerIDs))]
			}
			result := fmt.Sprintf("%d:%d", rand.Intn(4), rand.Intn(4))
			if _, err := tx.Exec(
				"INSERT INTO singlesmatch_table (team_match, home_player, away_player, result, match_number) VALUES (?, ?, ?, ?, ?)",
				teamMatchID, home, away, result, n+1,
			); err != nil {
				return fmt.Errorf("failed to insert singles match: %w", err)
			}
		}
	}
	log.Info("Inserted demo match days.", "count", len(matchdays))

	return nil
}
