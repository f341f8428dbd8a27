package main

import (
	"github.com/joho/godotenv"

	"github.com/ttrabelsi/facturier/internal/cli"
)

func main() {
	// Optional .env file; environment variables take precedence.
	godotenv.Load()

	cli.Execute()
}
