package main

import (
	"os"

	"github.com/pollhive/pollhive/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
