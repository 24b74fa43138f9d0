package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/classtrack/gradescan/cmd"
	"github.com/classtrack/gradescan/internal/utils"
	"github.com/joho/godotenv"
)

func main() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			utils.ExitOnError("Error loading .env file", err)
		}
	}

	if err := fang.Execute(context.Background(), cmd.RootCmd); err != nil {
		os.Exit(1)
	}
}
