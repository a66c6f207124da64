package main

import (
	"github.com/joho/godotenv"

	"github.com/redactyl/yamlconfig/cmd/yamlconfig"
	"github.com/redactyl/yamlconfig/internal/logging"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logging.Debug().Err(err).Msg("no .env file loaded")
	}
	yamlconfig.Execute()
}
