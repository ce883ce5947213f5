package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/salesqa/callcheck/cli"
)

func main() {
	// Best-effort: CALLCHECK_* settings may live in a .env next to the binary.
	_ = godotenv.Load()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
