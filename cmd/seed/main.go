package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"agencydesk/internal/database"
	"agencydesk/internal/domain"
	"agencydesk/internal/repository"
)

// Seeds a demo workspace: one host with the default week saved explicitly,
// a couple of clients and services, and a confirmed booking for tomorrow.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using environment variables")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "agencydesk.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	users := repository.NewUserRepository(db)
	clients := repository.NewClientRepository(db)
	services := repository.NewServiceRepository(db)
	hours := repository.NewWorkingHoursRepository(db)
	bookings := repository.NewBookingRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal(err)
	}

	host := &domain.User{
		Name:         "Dana Reyes",
		Email:        "dana@agencydesk.local",
		Role:         domain.RoleHost,
		PasswordHash: string(hash),
	}
	if err := users.Create(ctx, host); err != nil {
		log.Fatal(err)
	}

	if err := hours.ReplaceWeek(ctx, host.ID, domain.DefaultWeek(host.ID)); err != nil {
		log.Fatal(err)
	}

	acme := &domain.Client{Name: "Acme Media", Email: "ops@acme.example", Company: "Acme Media LLC"}
	brio := &domain.Client{Name: "Brio Coffee", Email: "hello@brio.example", Company: "Brio Coffee Co"}
	for _, c := range []*domain.Client{acme, brio} {
		if err := clients.Create(ctx, c); err != nil {
			log.Fatal(err)
		}
	}

	strategy := &domain.Service{Name: "Strategy Call", DurationMinutes: 30, Price: 150}
	audit := &domain.Service{Name: "Marketing Audit", DurationMinutes: 60, Price: 400}
	for _, s := range []*domain.Service{strategy, audit} {
		if err := services.Create(ctx, s); err != nil {
			log.Fatal(err)
		}
	}

	tomorrow := time.Now().AddDate(0, 0, 1)
	start := time.Date(tomorrow.Year(), tomorrow.Month(), tomorrow.Day(), 10, 0, 0, 0, time.UTC)
	b := &domain.Booking{
		HostID:    host.ID,
		ClientID:  acme.ID,
		ServiceID: &strategy.ID,
		Title:     "Kickoff strategy call",
		StartTime: start,
		EndTime:   start.Add(30 * time.Minute),
		Status:    domain.BookingConfirmed,
		CreatedBy: host.ID,
	}
	if err := bookings.Create(ctx, b); err != nil {
		log.Fatal(err)
	}

	log.Printf("seeded host %d, clients %d/%d, booking %d", host.ID, acme.ID, brio.ID, b.ID)
}
