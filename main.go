package main

import (
	"os"

	"github.com/drawbot/drawbot/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		os.Exit(1)
	}
}
