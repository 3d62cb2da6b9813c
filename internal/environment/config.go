package environment

import (
	"os"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	NatsUrl      string
	ReportSqsUrl string
	ReportDir    string
	LogLevel     string
}

func ReadEnvConfig() *EnvConfig {
	// .env is optional; real deployments set the variables directly
	_ = godotenv.Load()

	result := &EnvConfig{
		NatsUrl:      os.Getenv("NATS_URL"),
		ReportSqsUrl: os.Getenv("REPORT_SQS_URL"),
		ReportDir:    os.Getenv("REPORT_DIR"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}

	if result.NatsUrl == "" {
		result.NatsUrl = "nats://localhost:4222"
	}
	if result.ReportDir == "" {
		result.ReportDir = "reports"
	}

	return result
}
