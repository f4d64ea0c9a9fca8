package main

import (
	"os"

	logger "github.com/sirupsen/logrus"

	"github.com/svnlens/svnlens/application"
	"github.com/svnlens/svnlens/cmd"
	"github.com/svnlens/svnlens/config"
)

func main() {
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	container := buildContainer()

	err := container.Invoke(func(svc *application.WorkingCopyService, cfg *config.Config) error {
		if cfg.LogLevel != "" {
			if level, parseErr := logger.ParseLevel(cfg.LogLevel); parseErr == nil {
				logger.SetLevel(level)
			}
		}
		return cmd.NewRootCommand(svc).Execute()
	})
	if err != nil {
		logger.Fatalf("Error executing 'svnlens': %s", err)
	}
}
