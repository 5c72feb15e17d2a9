package main

import (
	"context"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/hidaya-tech/mizan/internal/announce"
	"github.com/hidaya-tech/mizan/internal/db"
	adminEndpoints "github.com/hidaya-tech/mizan/internal/http/api/admin/endpoints"
	authEndpoints "github.com/hidaya-tech/mizan/internal/http/api/auth/endpoints"
	prayerEndpoints "github.com/hidaya-tech/mizan/internal/http/api/prayer/endpoints"
	"github.com/hidaya-tech/mizan/internal/http/middleware"
	"github.com/hidaya-tech/mizan/internal/prayer"
	"github.com/hidaya-tech/mizan/internal/redis"
)

func main() {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()
	env := LoadEnvironment()

	// initialize PostgreSQL
	if err := db.Init(env.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}

	// run pending migrations
	if err := db.RunMigrations(env.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}

	store := db.NewStore(db.DB)

	if env.RedisAddress != "" {
		redis.InitRedis(env.RedisAddress, env.RedisUsername, env.RedisPassword)
	}

	reportArchive := InitStorage(env)

	trackingCfg := prayer.TrackingConfig{
		WindowDays:    env.DisqualifyWindowDays,
		MissThreshold: env.DisqualifyMissThreshold,
	}

	// session-state announcer for display boards
	if env.MQTTBrokerURL != "" {
		client, err := announce.NewClient(env.MQTTBrokerURL, "mizan-server")
		if err != nil {
			log.Fatal().Err(err).Msg("mqtt connect")
		}
		announcer := announce.NewAnnouncer(client, store)
		go announcer.Run(context.Background(), time.Minute)
	}

	// set up gin router
	r := gin.Default()
	r.Use(cors.Default())
	r.Use(middleware.InjectStore(store))

	api := r.Group("/api")
	authEndpoints.RegisterAuthRoutes(api, env.SecretKey, store)

	protected := api.Group("/")
	protected.Use(middleware.JWTMiddleware(env.SecretKey, store))
	authEndpoints.RegisterProfileRoutes(protected, env.SecretKey, store)

	prayerGroup := protected.Group("/prayer")
	prayerEndpoints.RegisterTimingRoutes(prayerGroup, store)
	prayerEndpoints.RegisterSessionRoutes(prayerGroup, store)
	prayerEndpoints.RegisterAttendanceRoutes(prayerGroup, store)
	prayerEndpoints.RegisterTrackingRoutes(prayerGroup, store, trackingCfg)

	admin := protected.Group("/admin")
	admin.Use(middleware.AdminRequired())
	adminEndpoints.RegisterUserRoutes(admin, store)
	adminEndpoints.RegisterTimingRoutes(admin, store)
	adminEndpoints.RegisterStatsRoutes(admin, store)
	adminEndpoints.RegisterReportRoutes(admin, store, reportArchive)

	// start
	log.Info().Str("address", env.ServerAddress).Msg("listening")
	if err := r.Run(env.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
