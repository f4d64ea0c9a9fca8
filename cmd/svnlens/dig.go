package main

import (
	logger "github.com/sirupsen/logrus"
	"go.uber.org/dig"

	"github.com/svnlens/svnlens/application"
	"github.com/svnlens/svnlens/config"
	"github.com/svnlens/svnlens/domain"
	"github.com/svnlens/svnlens/infrastructure/runner"
	"github.com/svnlens/svnlens/infrastructure/scan"
)

func buildContainer() *dig.Container {
	container := dig.New()

	must(container.Provide(loadConfig))
	must(container.Provide(func(cfg *config.Config) domain.Runner {
		return runner.New(cfg.Executable, cfg.ProxySettings())
	}))
	must(container.Provide(scan.NewRegistry))
	must(container.Provide(application.NewWorkingCopyService))

	return container
}

func loadConfig() *config.Config {
	path, err := config.FindConfigFile()
	if err != nil {
		logger.Debugf("No config file found, using defaults: %v", err)
		return config.Default()
	}

	cfg, loadErr := config.Load(path)
	if loadErr != nil {
		logger.Warnf("Ignoring unreadable config %q: %v", path, loadErr)
		return config.Default()
	}
	logger.Debugf("Loaded config from %q", path)
	return cfg
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
