package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var (
	MongoURI      string
	Port          string
	AWSRegion     string
	AWSBucketName string

	// Queue (QStash-style HTTP publish endpoint). Leaving QStashURL empty
	// switches the orchestrator to the direct best-effort worker call.
	QStashURL        string
	QStashToken      string
	WorkerProcessURL string

	GeminiAPIKey string

	JWTSecret     string
	FounderUserID string

	AutoProcessOnCreate bool
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "8080"
	}

	AWSRegion = os.Getenv("AWS_REGION")
	if AWSRegion == "" {
		AWSRegion = "us-east-1"
	}

	AWSBucketName = os.Getenv("AWS_BUCKET_NAME")
	if AWSBucketName == "" {
		AWSBucketName = "vesti-wardrobe-media"
	}

	QStashURL = os.Getenv("QSTASH_URL")
	QStashToken = os.Getenv("QSTASH_TOKEN")
	WorkerProcessURL = os.Getenv("WORKER_PROCESS_URL")

	GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	JWTSecret = os.Getenv("JWT_SECRET")

	FounderUserID = os.Getenv("FOUNDER_USER_ID")
	if FounderUserID == "" {
		FounderUserID = "founder-sub001"
	}

	AutoProcessOnCreate = true
	if v := os.Getenv("AUTO_PROCESS_ON_CREATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			AutoProcessOnCreate = b
		}
	}
}
