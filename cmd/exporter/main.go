package main

import (
	"fmt"
	"os"

	"github.com/vpikulik/prometheus-podman-exporter/cmd/exporter/app"
	"github.com/vpikulik/prometheus-podman-exporter/cmd/exporter/app/options"
	log "github.com/vpikulik/prometheus-podman-exporter/internal/logger"
)

func main() {
	option, err := options.NewOptions()
	if err != nil {
		fmt.Print(option.Usage(err))
		os.Exit(1)
	}

	logger, err := log.SetupLogger(*option.LogFile, *option.Mode)
	if err != nil {
		os.Exit(1)
	}
	defer logger.Sync()

	if err := app.Run(option, logger); err != nil {
		os.Exit(1)
	}
}
