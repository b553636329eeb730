package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"fulfillment/cmd"
	httpserver "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB, err := gorm.Open(postgresdriver.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	var notifier ports.Notifier
	if len(configs.KafkaBrokers) > 0 {
		kafkaNotifier, notifierErr := kafka.NewNotifier(configs.KafkaBrokers, configs.KafkaNotificationsTopic)
		if notifierErr != nil {
			logger.Error("Failed to connect to kafka", "error", notifierErr)
			os.Exit(1)
		}
		defer kafkaNotifier.Close()
		notifier = kafkaNotifier
	}

	app := cmd.NewCompositionRoot(configs, gormDB, notifier, logger)

	jobManager := jobs.NewJobManager(app.CreateAutoCompleteCommandHandler(), logger)
	if err := jobManager.StartAll(); err != nil {
		logger.Error("Failed to start background jobs", "error", err)
		os.Exit(1)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                goDotEnvVariable("HTTP_PORT"),
		DBHost:                  goDotEnvVariable("DB_HOST"),
		DBPort:                  goDotEnvVariable("DB_PORT"),
		DBUser:                  goDotEnvVariable("DB_USER"),
		DBPassword:              goDotEnvVariable("DB_PASSWORD"),
		DBName:                  goDotEnvVariable("DB_NAME"),
		DBSslMode:               goDotEnvVariable("DB_SSLMODE"),
		KafkaNotificationsTopic: goDotEnvVariable("KAFKA_NOTIFICATIONS_TOPIC"),
	}

	if brokers := goDotEnvVariable("KAFKA_BROKERS"); brokers != "" {
		config.KafkaBrokers = strings.Split(brokers, ",")
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

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpserver.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateProposeWindowCommandHandler(),
		app.CreateAcceptWindowCommandHandler(),
		app.CreateCounterProposeWindowCommandHandler(),
		app.CreateBeginTransitCommandHandler(),
		app.CreateRecordHandoverCommandHandler(),
		app.CreateConfirmDeliveryCommandHandler(),
		app.CreateReportIssueCommandHandler(),
		app.CreateCancelOrderCommandHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
