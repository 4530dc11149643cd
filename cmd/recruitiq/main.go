package main

import (
	"os"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env for API keys and database credentials.
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
