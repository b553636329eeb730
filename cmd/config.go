package cmd

import "fmt"

type Config struct {
	HTTPPort                string
	DBHost                  string
	DBPort                  string
	DBUser                  string
	DBPassword              string
	DBName                  string
	DBSslMode               string
	KafkaBrokers            []string
	KafkaNotificationsTopic string
}

// PostgresDSN builds the connection string for both gorm and goose.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
