package cmd

import (
	"fmt"
	"net/http"
	"time"

	"intelvest/api"
	"intelvest/internal"
	"intelvest/internal/app"
	"intelvest/internal/repository"
	clerkauth "intelvest/pkg/clerk-auth"
	"intelvest/pkg/intelvestor"
)

func InitializeDependencies() (*api.ApiHandler, error) {
	secrets, err := internal.LoadSecrets()
	if err != nil {
		return nil, fmt.Errorf("failed to load secrets: %w", err)
	}

	httpClient := &http.Client{
		Timeout: time.Duration(secrets.CycleTimeoutSeconds) * time.Second,
	}

	tokenClient := clerkauth.NewClient(httpClient, secrets.ClerkFrontendApi, secrets.ClerkSessionId)
	// nothing else to initialize on this side; the provider is usable as
	// soon as it is constructed
	tokenClient.MarkReady()

	backendClient := intelvestor.Client{
		HttpClient: httpClient,
		BaseUrl:    secrets.BackendUrl,
	}

	var explanationRepository repository.ExplanationRepository
	if secrets.ChatGPTApiKey != "" {
		explanationRepository, err = repository.NewExplanationRepository(secrets.ChatGPTApiKey)
		if err != nil {
			return nil, err
		}
	}

	orchestrator := app.Orchestrator{
		Tokens:       tokenClient,
		Client:       backendClient,
		Explanations: explanationRepository,
		CycleTimeout: time.Duration(secrets.CycleTimeoutSeconds) * time.Second,
	}

	return &api.ApiHandler{
		Orchestrator: orchestrator,
	}, nil
}
