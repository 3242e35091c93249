package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/etudify/etudify-backend/config"
	"github.com/etudify/etudify-backend/controllers"
	"github.com/etudify/etudify-backend/database"
	"github.com/etudify/etudify-backend/middleware"
	"github.com/etudify/etudify-backend/store"
	"github.com/etudify/etudify-backend/token"
	"github.com/etudify/etudify-backend/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	client, err := database.Connect(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Println("mongo disconnect:", err)
		}
	}()

	users := store.NewMongoUserStore(client.Database(cfg.DatabaseName).Collection("users"))
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatal(err)
	}

	tokens := token.NewManager(users, cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)
	cookies := utils.CookieOptions{
		Domain: cfg.CookieDomain,
		Secure: cfg.CookieSecure,
		MaxAge: cfg.RefreshTTL,
	}
	auth := controllers.NewAuthController(users, tokens, cookies)

	allowedOrigins := map[string]bool{}
	for _, origin := range cfg.AllowedOrigins {
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	log.Printf("Allowed origins: %v", allowedOrigins)

	r := gin.New()
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Access-Token"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	authRoutes := r.Group("/api/auth")
	{
		authRoutes.POST("/signup", auth.Signup())
		authRoutes.POST("/login", auth.Login())
	}

	gated := r.Group("/api/auth")
	gated.Use(middleware.Authenticate(tokens))
	{
		gated.POST("/logout", auth.Logout())
		gated.POST("/password", auth.ChangeMyPassword())
		gated.GET("/me", auth.Me())
	}

	r.Run(":" + cfg.Port)
}
