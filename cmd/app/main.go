package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"fueldrop/cmd"
	httpin "fueldrop/internal/adapters/in/http"
	"fueldrop/internal/adapters/out/postgres/capacityrepo"
	"fueldrop/internal/adapters/out/postgres/compensationrepo"
	"fueldrop/internal/adapters/out/postgres/ledgerrepo"
	"fueldrop/internal/adapters/out/postgres/orderrepo"
	"fueldrop/internal/adapters/out/postgres/userrepo"
	"fueldrop/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(app.CreateRunCompensationCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:        goDotEnvVariable("HTTP_PORT"),
		DBHost:          goDotEnvVariable("DB_HOST"),
		DBPort:          goDotEnvVariable("DB_PORT"),
		DBUser:          goDotEnvVariable("DB_USER"),
		DBPassword:      goDotEnvVariable("DB_PASSWORD"),
		DBName:          goDotEnvVariable("DB_NAME"),
		DBSslMode:       goDotEnvVariable("DB_SSLMODE"),
		StripeSecretKey: goDotEnvVariable("STRIPE_SECRET_KEY"),
		PushBaseURL:     goDotEnvVariable("PUSH_BASE_URL"),
		PushAPIKey:      goDotEnvVariable("PUSH_API_KEY"),
		TrackBaseURL:    goDotEnvVariable("TRACK_BASE_URL"),
		TrackAPIKey:     goDotEnvVariable("TRACK_API_KEY"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&compensationrepo.StepDTO{},
		&userrepo.UserDTO{},
		&ledgerrepo.CouponUsageDTO{},
		&ledgerrepo.ReferralBalanceDTO{},
		&capacityrepo.AssignmentDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := httpin.NewServer(
		app.CreateAssignCourierCommandHandler(),
		app.CreateProgressOrderCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetUnpaidBalanceQueryHandler(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
