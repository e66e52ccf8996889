package main

import (
	"github.com/joho/godotenv"

	"github.com/PCalderonpm/menu-escolar/internal/cli"
)

func main() {
	_ = godotenv.Load()
	cli.Execute()
}
