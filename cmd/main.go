package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gotimer-app/gotimer-backend/internal/admin"
	"github.com/gotimer-app/gotimer-backend/internal/challenge"
	"github.com/gotimer-app/gotimer-backend/internal/feedback"
	"github.com/gotimer-app/gotimer-backend/internal/game"
	"github.com/gotimer-app/gotimer-backend/internal/gametype"
	"github.com/gotimer-app/gotimer-backend/internal/gif"
	"github.com/gotimer-app/gotimer-backend/internal/invite"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/identity"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/middleware"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/migration"
	"github.com/gotimer-app/gotimer-backend/internal/pkg/pubsub"
	"github.com/gotimer-app/gotimer-backend/internal/profile"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	setupViper()
	setupZerolog()
	pubsub.InitPubSub()
	db := setupDb()

	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	apiRouter := setupApiRouter(db)

	defer func() { pubsub.CloseClient() }()

	identity.InitFirebaseSdk()

	port := viper.Get("PORT").(string)
	server := &http.Server{
		Addr:         port,
		Handler:      apiRouter,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	server.ListenAndServe()
}

func setupDb() *gorm.DB {
	dbUrl := viper.Get("DB_URL").(string)

	db, err := gorm.Open(postgres.Open(dbUrl), &gorm.Config{})

	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	sqlDb, _ := db.DB()

	sqlDb.SetMaxOpenConns(50)
	sqlDb.SetConnMaxLifetime(time.Minute * 10)

	return db
}

func setupApiRouter(db *gorm.DB) *gin.Engine {
	apiRouter := gin.Default()
	routerGroup := apiRouter.Group("/gotimer-api")

	middleware.RegisterGlobalMiddleware(apiRouter)

	challenge.RegisterRoutes(routerGroup, db)
	invite.RegisterRoutes(routerGroup, db)
	game.RegisterRoutes(routerGroup, db)
	gametype.RegisterRoutes(routerGroup, db)
	profile.RegisterRoutes(routerGroup, db, identity.NewDirectory())
	feedback.RegisterRoutes(routerGroup)
	gif.RegisterRoutes(routerGroup)
	admin.RegisterRoutes(routerGroup, db)

	return apiRouter
}

func setupViper() {
	viper.AutomaticEnv()
	viper.SetConfigFile("./.env")
}

func setupZerolog() {
	zerolog.LevelFieldName = "severity"
	zerolog.TimestampFieldName = "time"
	zerolog.TimeFieldFormat = time.RFC3339Nano
}
