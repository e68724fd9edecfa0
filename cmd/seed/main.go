package main

import (
	"context"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"ugandaserve/internal/config"
	"ugandaserve/internal/database"
	"ugandaserve/internal/domain/auth"
	"ugandaserve/internal/domain/booking"
	"ugandaserve/internal/domain/catalog"
	"ugandaserve/internal/domain/subscription"
	"ugandaserve/internal/pkg/clock"
	jwtsvc "ugandaserve/internal/pkg/jwt"
	"ugandaserve/internal/pkg/reference"
)

// Seeds a demo client, a provider on the pro plan, two listings and one
// booking so a fresh database has something to show.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	clk := clock.System()

	userRepo := auth.NewRepository(db)
	listingRepo := catalog.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	subRepo := subscription.NewRepository(db)

	authService := auth.NewService(userRepo, jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL))
	subService := subscription.NewService(subRepo, clk)
	catalogService := catalog.NewService(listingRepo, subService, rand.NewSource(time.Now().UnixNano()))
	bookingService := booking.NewService(
		bookingRepo,
		catalogService,
		reference.NewGenerator("UGS", clk.Now, rand.NewSource(time.Now().UnixNano())),
		clk,
	)

	client := seedUser(ctx, authService, auth.RegisterRequest{
		Name:     "Amina Nankya",
		Email:    "amina@example.com",
		Password: "password123",
		Phone:    "+256700000001",
		Role:     "client",
	})
	provider := seedUser(ctx, authService, auth.RegisterRequest{
		Name:     "Okello Cleaning Co",
		Email:    "okello@example.com",
		Password: "password123",
		Phone:    "+256700000002",
		Role:     "provider",
	})

	if _, err := subService.Create(ctx, provider.ID, subscription.PlanPro, subscription.CycleMonthly); err != nil {
		log.Println("seed subscription:", err)
	}

	cleaning := seedListing(ctx, catalogService, provider.ID, catalog.CreateListingRequest{
		Title:       "Deep home cleaning",
		Description: "Full-house deep clean covering kitchens, bathrooms and living areas.",
		BasePrice:   decimal.NewFromInt(100000),
	})
	seedListing(ctx, catalogService, provider.ID, catalog.CreateListingRequest{
		Title:       "Garden landscaping",
		Description: "Lawn care, hedge trimming and seasonal planting for compounds of any size.",
		BasePrice:   decimal.NewFromInt(150000),
	})

	if cleaning != nil {
		date := clk.Now().AddDate(0, 0, 7).Format("2006-01-02")
		b, err := bookingService.Create(ctx, booking.CreateRequest{
			ClientID:        client.ID,
			ServiceID:       cleaning.ID,
			ScheduledDate:   date,
			ScheduledTime:   "10:00",
			Duration:        120,
			ServiceLocation: string(booking.LocationClient),
			Discount:        decimal.NewFromInt(5000),
			Currency:        "UGX",
			ClientPhone:     "+256700000001",
			ClientEmail:     "amina@example.com",
		})
		if err != nil {
			log.Fatal("seed booking: ", err)
		}
		log.Println("seeded booking", b.Reference)
	}

	log.Println("seed complete")
}

func seedUser(ctx context.Context, svc *auth.Service, req auth.RegisterRequest) *auth.User {
	u, err := svc.Register(ctx, req)
	if err != nil {
		log.Printf("seed user %s: %v", req.Email, err)
		u, err = svc.GetByEmail(ctx, req.Email)
		if err != nil {
			log.Fatal(err)
		}
	}
	return u
}

func seedListing(ctx context.Context, svc *catalog.Service, providerID string, req catalog.CreateListingRequest) *catalog.Listing {
	l, err := svc.Create(ctx, providerID, req)
	if err != nil {
		log.Printf("seed listing %q: %v", req.Title, err)
		return nil
	}
	return l
}
