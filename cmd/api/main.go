package main

import (
	"log"
	"math/rand"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"ugandaserve/internal/config"
	"ugandaserve/internal/database"
	"ugandaserve/internal/domain/auth"
	"ugandaserve/internal/domain/booking"
	"ugandaserve/internal/domain/catalog"
	"ugandaserve/internal/domain/subscription"
	"ugandaserve/internal/middleware"
	"ugandaserve/internal/pkg/clock"
	jwtsvc "ugandaserve/internal/pkg/jwt"
	"ugandaserve/internal/pkg/reference"
)

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

	clk := clock.System()
	entropy := rand.NewSource(time.Now().UnixNano())

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	userRepo := auth.NewRepository(db)
	listingRepo := catalog.NewRepository(db)
	bookingRepo := booking.NewRepository(db)
	subRepo := subscription.NewRepository(db)

	authService := auth.NewService(userRepo, j)
	authHandler := auth.NewHandler(authService)

	subService := subscription.NewService(subRepo, clk)
	subHandler := subscription.NewHandler(subService, clk)

	catalogService := catalog.NewService(listingRepo, subService, entropy)
	catalogHandler := catalog.NewHandler(catalogService)

	refs := reference.NewGenerator("UGS", clk.Now, rand.NewSource(time.Now().UnixNano()))
	bookingService := booking.NewService(bookingRepo, catalogService, refs, clk)
	bookingHandler := booking.NewHandler(bookingService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterPublicRoutes(v1)
		subHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			bookingHandler.RegisterRoutes(protected)

			provider := protected.Group("/")
			provider.Use(middleware.RequireRole(string(auth.RoleProvider), string(auth.RoleAdmin)))
			{
				catalogHandler.RegisterProviderRoutes(provider)
				subHandler.RegisterProviderRoutes(provider)
			}
		}
	}

	log.Println("Listening on", cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
