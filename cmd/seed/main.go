package main

import (
	"fmt"
	"log"
	"time"

	"festly/internal/program"
	"festly/internal/shared/config"
	"festly/internal/shared/database"
	"festly/internal/ticketing"
	"festly/internal/users"

	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Festly Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"user_program_items",
		"tickets",
		"orders",
		"ticket_types",
		"conferences",
		"festival_days",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds users, festival days, ticket types and conferences.
func (s *Seeder) SeedAll() error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}
	if err := s.SeedFestivalDays(); err != nil {
		return fmt.Errorf("failed to seed festival days: %w", err)
	}
	if err := s.SeedTicketTypes(); err != nil {
		return fmt.Errorf("failed to seed ticket types: %w", err)
	}
	if err := s.SeedConferences(); err != nil {
		return fmt.Errorf("failed to seed conferences: %w", err)
	}
	return nil
}

func (s *Seeder) SeedUsers() error {
	fmt.Println("  Seeding users...")

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	seedUsers := []users.User{
		{Name: "Festival Admin", Email: "admin@festly.dev", Password: string(hash), Role: users.RoleAdmin},
		{Name: "Alice Martin", Email: "alice@example.com", Password: string(hash), Role: users.RoleUser},
		{Name: "Bruno Petit", Email: "bruno@example.com", Password: string(hash), Role: users.RoleUser},
	}

	return s.db.PostgreSQL.Create(&seedUsers).Error
}

func (s *Seeder) SeedFestivalDays() error {
	fmt.Println("  Seeding festival days...")

	days := []ticketing.FestivalDay{
		{Name: "Vendredi 17 Juillet", Date: date(2026, time.July, 17), MaxCapacity: 2000},
		{Name: "Samedi 18 Juillet", Date: date(2026, time.July, 18), MaxCapacity: 2000},
		{Name: "Dimanche 19 Juillet", Date: date(2026, time.July, 19), MaxCapacity: 2000},
	}

	return s.db.PostgreSQL.Create(&days).Error
}

func (s *Seeder) SeedTicketTypes() error {
	fmt.Println("  Seeding ticket types...")

	now := time.Now().UTC()
	types := []ticketing.TicketType{
		{
			Name:         "Pass Jour 1 (Vendredi)",
			Description:  "Accès complet aux conférences et concerts du Vendredi 17 Juillet.",
			PriceCents:   3500,
			Capacity:     5000,
			IsActive:     true,
			SalesStartAt: &now,
			ValidFrom:    ptr(date(2026, time.July, 17)),
			ValidUntil:   ptr(endOfDay(2026, time.July, 17)),
		},
		{
			Name:         "Pass Jour 2 (Samedi)",
			Description:  "Accès complet aux conférences et concerts du Samedi 18 Juillet.",
			PriceCents:   4500,
			Capacity:     5000,
			IsActive:     true,
			SalesStartAt: &now,
			ValidFrom:    ptr(date(2026, time.July, 18)),
			ValidUntil:   ptr(endOfDay(2026, time.July, 18)),
		},
		{
			Name:         "Pass Jour 3 (Dimanche)",
			Description:  "Accès complet aux conférences et concerts du Dimanche 19 Juillet.",
			PriceCents:   4500,
			Capacity:     5000,
			IsActive:     true,
			SalesStartAt: &now,
			ValidFrom:    ptr(date(2026, time.July, 19)),
			ValidUntil:   ptr(endOfDay(2026, time.July, 19)),
		},
		{
			Name:         "Pass Week-end",
			Description:  "Profitez du coeur du festival. Accès Samedi et Dimanche.",
			PriceCents:   7000,
			Capacity:     5000,
			IsActive:     true,
			SalesStartAt: &now,
			ValidFrom:    ptr(date(2026, time.July, 18)),
			ValidUntil:   ptr(endOfDay(2026, time.July, 19)),
		},
		{
			Name:         "Pass 3 Jours",
			Description:  "L'expérience totale. Accès aux 3 jours du festival.",
			PriceCents:   9000,
			Capacity:     5000,
			IsActive:     true,
			SalesStartAt: &now,
			ValidFrom:    ptr(date(2026, time.July, 17)),
			ValidUntil:   ptr(endOfDay(2026, time.July, 19)),
		},
	}

	return s.db.PostgreSQL.Create(&types).Error
}

func (s *Seeder) SeedConferences() error {
	fmt.Println("  Seeding conferences...")

	conferences := []program.Conference{
		{
			Title:       "L'Architecture de Demain",
			Description: "Comment construire durablement en 2030 ? Une exploration des matériaux bio-sourcés.",
			Theme:       "Écologie & Habitat",
			StartAt:     at(2026, time.July, 17, 10, 0),
			EndAt:       at(2026, time.July, 17, 11, 30),
			SpeakerName: "Jean Nouvel (Invité)",
			Location:    "Grande Scène",
			MaxCapacity: ptr(100),
		},
		{
			Title:       "L'Océan, notre avenir",
			Description: "Plongée au cœur des enjeux maritimes et de la biodiversité.",
			Theme:       "Biodiversité",
			StartAt:     at(2026, time.July, 17, 14, 0),
			EndAt:       at(2026, time.July, 17, 15, 30),
			SpeakerName: "Claire Nouvian",
			Location:    "Chapiteau Océan",
			MaxCapacity: ptr(50),
		},
		{
			Title:       "Tech & Sobriété",
			Description: "Le numérique peut-il être compatible avec les limites planétaires ?",
			Theme:       "Numérique Responsable",
			StartAt:     at(2026, time.July, 18, 11, 0),
			EndAt:       at(2026, time.July, 18, 12, 30),
			SpeakerName: "Aurélien Barrau",
			Location:    "Salle des Possibles",
			MaxCapacity: ptr(5),
		},
		{
			Title:       "Clôture : L'Espoir en action",
			Description: "Table ronde finale sur l'engagement citoyen.",
			Theme:       "Engagement",
			StartAt:     at(2026, time.July, 19, 16, 0),
			EndAt:       at(2026, time.July, 19, 18, 0),
			SpeakerName: "Collectif",
			Location:    "Grande Scène",
			MaxCapacity: ptr(500),
		},
	}

	return s.db.PostgreSQL.Create(&conferences).Error
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func endOfDay(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 23, 59, 59, 0, time.UTC)
}

func at(year int, month time.Month, day, hour, minute int) time.Time {
	return time.Date(year, month, day, hour, minute, 0, 0, time.UTC)
}

func ptr[T any](v T) *T {
	return &v
}
