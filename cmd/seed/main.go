package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dailydiet/internal/config"
	"dailydiet/internal/db"
	"dailydiet/internal/model"
	"dailydiet/internal/repository"
)

const (
	demoUserName  = "Demo User"
	demoUserEmail = "demo@dailydiet.local"
)

type seedMeal struct {
	name        string
	description string
	daysAgo     int
	onDiet      bool
}

var seedMeals = []seedMeal{
	{"Oatmeal with fruit", "Rolled oats, banana, blueberries", 6, true},
	{"Grilled chicken salad", "Chicken breast, greens, olive oil", 5, true},
	{"Pizza night", "Four cheese, two slices too many", 4, false},
	{"Veggie omelette", "Eggs, spinach, tomatoes", 3, true},
	{"Lentil soup", "Homemade, no cream", 2, true},
	{"Baked salmon", "Salmon, asparagus, quinoa", 1, true},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Meal{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	users := repository.NewUserRepository(gormDB)
	meals := repository.NewMealRepository(gormDB)

	user, err := users.FindByEmail(ctx, demoUserEmail)
	switch {
	case err == nil:
		log.Printf("Demo user already exists (session token %s), skipping", user.SessionToken)
		return
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first run, create below
	default:
		log.Fatalf("Failed to look up demo user: %v", err)
	}

	user = &model.User{
		Name:         demoUserName,
		Email:        demoUserEmail,
		SessionToken: uuid.New().String(),
	}
	if err := users.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create demo user: %v", err)
	}

	now := time.Now().UTC()
	for _, sm := range seedMeals {
		meal := &model.Meal{
			UserID:      user.ID,
			Name:        sm.name,
			Description: sm.description,
			OccurredAt:  now.AddDate(0, 0, -sm.daysAgo).UnixMilli(),
			OnDiet:      sm.onDiet,
		}
		if err := meals.Create(ctx, meal); err != nil {
			log.Fatalf("Failed to create meal %q: %v", sm.name, err)
		}
	}

	log.Printf("Seeded demo user %s with %d meals", demoUserEmail, len(seedMeals))
	log.Printf("Session token for cookie %q: %s", "sessionId", user.SessionToken)
}
