package main

import (
	"fmt"
	"time"

	"github.com/SoMedNinja/padel-app-sub001/internal/club"
	"github.com/SoMedNinja/padel-app-sub001/internal/config"
	"github.com/SoMedNinja/padel-app-sub001/internal/database"
	"github.com/SoMedNinja/padel-app-sub001/internal/timeutil"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	seed       = 2024
	numPlayers = 12
	numNights  = 40
	perNight   = 6
)

func main() {
	log.Info("Starting database seeder...")
	cfg := config.Load()

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()
	loc, err := timeutil.LoadLocation(cfg.ClubTimezone)
	if err != nil {
		log.Fatalf("Failed to load club time zone: %s", err)
	}

	store := club.New(db)
	f := gofakeit.New(seed)

	profiles := make([]club.Profile, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		profiles = append(profiles, club.Profile{
			ID:         uuid.NewString(),
			Name:       f.FirstName() + " " + f.LastName()[:1],
			IsRegular:  i < numPlayers-2,
			IsApproved: true,
		})
	}
	if err := store.UpsertProfiles(profiles); err != nil {
		log.Fatalf("Failed to insert profiles: %s", err)
	}
	log.Info("Ensured seeded players exist.", "count", len(profiles))

	startTime := time.Now()
	matches := make([]club.Match, 0, numNights*perNight)
	today := time.Now().In(loc)
	for night := numNights; night > 0; night-- {
		day := time.Date(today.Year(), today.Month(), today.Day()-night*2, 19, 0, 0, 0, loc)
		for game := 0; game < perNight; game++ {
			matches = append(matches, randomMatch(f, profiles, day.Add(time.Duration(game)*25*time.Minute)))
		}
	}
	if err := store.UpsertMatches(matches); err != nil {
		log.Fatalf("Failed to insert matches: %s", err)
	}
	log.Info("Successfully inserted seeded matches.", "total", len(matches), "duration", time.Since(startTime))
}

// randomMatch draws four distinct players. Roughly one in ten matches is a points game.
func randomMatch(f *gofakeit.Faker, profiles []club.Profile, at time.Time) club.Match {
	pool := make([]club.Profile, len(profiles))
	copy(pool, profiles)
	f.ShuffleAnySlice(pool)

	m := club.Match{
		ID:        uuid.NewString(),
		CreatedAt: at,
		Team1:     club.IDRoster(pool[0].ID, pool[1].ID),
		Team2:     club.IDRoster(pool[2].ID, pool[3].ID),
		ScoreType: club.ScoreTypeSets,
	}
	s1, s2 := 2, f.IntRange(0, 1)
	if f.Number(1, 10) == 1 {
		m.ScoreType = club.ScoreTypePoints
		s1, s2 = 16+f.IntRange(0, 8), f.IntRange(4, 15)
	}
	if f.Bool() {
		s1, s2 = s2, s1
	}
	m.Team1Score, m.Team2Score = club.IntPtr(s1), club.IntPtr(s2)
	log.Debug("Seeded match", "id", m.ID, "score", fmt.Sprintf("%d-%d", s1, s2))
	return m
}
