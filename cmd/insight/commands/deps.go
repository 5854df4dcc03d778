package commands

import (
	"intelvest/cmd"
	"intelvest/internal/app"
)

func initOrchestrator() (app.Orchestrator, error) {
	handler, err := cmd.InitializeDependencies()
	if err != nil {
		return app.Orchestrator{}, err
	}
	return handler.Orchestrator, nil
}
