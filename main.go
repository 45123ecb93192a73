package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/haguru/bugtracker/config"
	"github.com/haguru/bugtracker/internal/app"
)

func main() {
	configPath := flag.String("config", config.CONFIG_PATH, "path to the service configuration file")
	flag.Parse()

	// create and initialize the app
	app, err := app.NewApp(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start bugtracker: %v\n", err)
		os.Exit(1)
	}

	// blocks until SIGINT or SIGTERM
	if err := app.Run(); err != nil {
		app.Logger.Error("bugtracker stopped with an error", "error", err)
		os.Exit(1)
	}
}
