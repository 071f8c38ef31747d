package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymlog/internal/auth"
	"github.com/2beens/gymlog/internal/config"
	"github.com/2beens/gymlog/internal/db"
	"github.com/2beens/gymlog/internal/gymlog/exercises"
	"github.com/2beens/gymlog/internal/gymlog/sequence"
	"github.com/2beens/gymlog/internal/gymlog/users"
	"github.com/2beens/gymlog/internal/logging"
	"github.com/2beens/gymlog/pkg"
)

// seeded plan, one slice of exercise names per day
var planDays = [][]string{
	{"Bench Press", "Incline Press", "Dips"},
	{"Pull Up", "Lat Pulldown", "Seated Row"},
	{"Squat", "Leg Press", "Hamstring Curl", "Lateral Raise"},
}

func main() {
	env := flag.String("env", "development", "environment [dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	usersCount := flag.Int("users", 3, "number of fake users to create")
	password := flag.String("password", "gymlog", "password set for every fake user")
	seed := flag.Int64("seed", time.Now().UnixNano(), "gofakeit seed")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}
	logging.Setup(logging.LoggerSetupParams{
		LogToStdout: true,
		LogLevel:    cfg.LogLevel,
	})

	if cfg.Environment == "production" {
		log.Fatalln("refusing to seed a production database")
	}

	gofakeit.Seed(*seed)
	log.Debugf("gofakeit seed: %d", *seed)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:     cfg.PostgresHost,
		DBPort:     cfg.PostgresPort,
		DBName:     cfg.PostgresDBName,
		DBUser:     os.Getenv("GYMLOG_DB_USER"),
		DBPassword: os.Getenv("GYMLOG_DB_PASS"),
	})
	if err != nil {
		log.Fatalf("new db pool: %s", err)
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		log.Fatalf("migrate: %s", err)
	}

	exerciseIDs, err := seedExercises(ctx, exercises.NewRepo(dbPool))
	if err != nil {
		log.Fatalf("seed exercises: %s", err)
	}

	passwordHash, err := pkg.HashPassword(*password)
	if err != nil {
		log.Fatalf("hash password: %s", err)
	}

	usersRepo := users.NewRepo(dbPool)
	sequenceRepo := sequence.NewRepo(dbPool)
	for i := 0; i < *usersCount; i++ {
		user, err := usersRepo.Add(ctx, users.User{
			Name:         fmt.Sprintf("%s%d", gofakeit.FirstName(), gofakeit.Number(10, 99)),
			Role:         auth.RoleUser,
			AvatarColor:  gofakeit.HexColor(),
			PasswordHash: passwordHash,
		})
		if err != nil {
			log.Errorf("add user: %s", err)
			continue
		}

		for day, names := range planDays {
			for _, name := range names {
				if _, err := sequenceRepo.AddEntry(ctx, user.ID, exerciseIDs[name], day+1); err != nil {
					log.Fatalf("add sequence entry for %s: %s", user.Name, err)
				}
			}
		}
		log.Infof("user [%s] seeded with a %d day plan", user.Name, len(planDays))
	}
}

func seedExercises(ctx context.Context, repo *exercises.Repo) (map[string]int, error) {
	classifier := exercises.NewKeywordClassifier()
	ids := make(map[string]int)
	for _, names := range planDays {
		for _, name := range names {
			if _, ok := ids[name]; ok {
				continue
			}

			category, asset, ok := classifier.Classify(name)
			if !ok {
				return nil, fmt.Errorf("no category for %s", name)
			}
			added, err := repo.Add(ctx, exercises.Exercise{
				Name:         name,
				Category:     category,
				TargetSets:   gofakeit.Number(3, 5),
				TargetReps:   gofakeit.RandomInt([]int{6, 8, 10, 12}),
				TargetWeight: float64(gofakeit.Number(4, 24)) * 2.5,
				GifURL:       asset,
			})
			if err != nil {
				return nil, err
			}
			ids[name] = added.ID
		}
	}
	return ids, nil
}
