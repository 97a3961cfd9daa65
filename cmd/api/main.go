package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"

	"github.com/salonova/booking-api/internal/config"
	dbpkg "github.com/salonova/booking-api/internal/db"
	"github.com/salonova/booking-api/internal/handlers"
	"github.com/salonova/booking-api/internal/infra/tokenstore"
	"github.com/salonova/booking-api/internal/middleware"
	"github.com/salonova/booking-api/internal/routes"
)

func main() {

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	tokens := tokenstore.NewRedisTokenStore(redisClient)

	var payments handlers.PaymentFetcher
	if cfg.MercadoPagoAccessToken != "" {
		mpCfg, err := mpconfig.New(cfg.MercadoPagoAccessToken)
		if err != nil {
			log.Fatalf("failed to configure payment gateway: %v", err)
		}
		payments = payment.NewClient(mpCfg)
	} else {
		log.Println("MP_ACCESS_TOKEN not set, payment callback disabled")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, tokens, payments)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
