package main

import (
	"log"
	"os"
	"time"

	"restaurant-pos/internal/cart"
	poshttp "restaurant-pos/internal/controllers/http"
	"restaurant-pos/internal/infra/db"
	"restaurant-pos/internal/infra/rabbitmq"
	"restaurant-pos/internal/repository/sqlstore"
	"restaurant-pos/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	gdb, err := db.NewFromEnv()
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	store := sqlstore.NewStore(gdb)

	var publisher rabbitmq.PublisherInterface
	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		pub, err := rabbitmq.NewPublisher(url, "pos.orders")
		if err != nil {
			log.Fatalf("failed to init publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
	}

	catalogSvc := services.NewCatalogService(store)
	customerSvc := services.NewCustomerService(store)
	userSvc := services.NewUserService(store)
	orderSvc := services.NewOrderService(store, publisher)
	reportSvc := services.NewReportService(store)

	var redisClient *redis.Client
	if host := os.Getenv("REDIS_HOST"); host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:         host + ":6379",
			DB:           0,
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
		reportSvc.SetRedisClient(redisClient)
	}

	carts := cart.NewManager(store.Items())

	handler := poshttp.NewHandler(catalogSvc, customerSvc, userSvc, orderSvc, reportSvc, carts, redisClient)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	handler.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting pos server on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
