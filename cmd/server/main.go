package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ayatok/cinemalog/internal/auth"
	"github.com/ayatok/cinemalog/internal/config"
	"github.com/ayatok/cinemalog/internal/database"
	"github.com/ayatok/cinemalog/internal/handler"
	"github.com/ayatok/cinemalog/internal/queue"
	"github.com/ayatok/cinemalog/internal/repository"
	"github.com/ayatok/cinemalog/internal/router"
	"github.com/ayatok/cinemalog/internal/service"
)

func main() {
	// .env is optional; in production the variables come from the host.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	movies := repository.NewMovieRepo(db)
	places := repository.NewPlaceRepo(db)
	records := repository.NewRecordRepo(db)
	friends := repository.NewFriendRepo(db)
	comments := repository.NewCommentRepo(db)

	access := service.NewAccessService(friends)
	recordSvc := service.NewRecordService(records, movies, places, access, queue.NewPublisher())
	catalogSvc := service.NewCatalogService(movies, places)
	commentSvc := service.NewCommentService(comments, records, access)
	friendSvc := service.NewFriendService(friends)

	oauth := auth.NewProvider(cfg.OAuthClientID, cfg.OAuthClientSecret,
		cfg.OAuthAuthURL, cfg.OAuthTokenURL, cfg.OAuthUserInfoURL, cfg.OAuthRedirectURL)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())

	router.RegisterRoutes(e)
	router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens, oauth), cfg.JWTSecret)
	router.RegisterAPI(e, router.Handlers{
		Records: handler.NewRecordHandler(recordSvc, cfg.BaseURL),
		Catalog: handler.NewCatalogHandler(catalogSvc),
		Comment: handler.NewCommentHandler(commentSvc),
		Friend:  handler.NewFriendHandler(friendSvc),
	}, cfg, rdb)

	// Background consumer turning record.logged events into the activity
	// log. Runs its own reconnect loop for the life of the process.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
