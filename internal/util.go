package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func Pprint(i interface{}) {
	bytes, err := json.MarshalIndent(i, "", "    ")
	if err != nil {
		panic(err)
	}
	fmt.Println(string(bytes))
}

type Secrets struct {
	BackendUrl          string
	ClerkFrontendApi    string
	ClerkSessionId      string
	ChatGPTApiKey       string
	CycleTimeoutSeconds int
}

// LoadSecrets reads configuration from the environment, with .env applied
// first when present. Missing .env is fine - deployed environments inject
// real env vars.
func LoadSecrets() (*Secrets, error) {
	_ = godotenv.Load()

	secrets := &Secrets{
		BackendUrl:          os.Getenv("INTELVEST_BACKEND_URL"),
		ClerkFrontendApi:    os.Getenv("INTELVEST_CLERK_FRONTEND_API"),
		ClerkSessionId:      os.Getenv("INTELVEST_CLERK_SESSION_ID"),
		ChatGPTApiKey:       os.Getenv("INTELVEST_GPT_API_KEY"),
		CycleTimeoutSeconds: 15,
	}

	if secrets.BackendUrl == "" {
		secrets.BackendUrl = "http://localhost:8080"
	}
	if secrets.ClerkFrontendApi == "" {
		return nil, fmt.Errorf("INTELVEST_CLERK_FRONTEND_API is required")
	}

	if timeoutStr := os.Getenv("INTELVEST_CYCLE_TIMEOUT_SECONDS"); timeoutStr != "" {
		timeout, err := strconv.Atoi(timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("could not parse INTELVEST_CYCLE_TIMEOUT_SECONDS: %w", err)
		}
		secrets.CycleTimeoutSeconds = timeout
	}

	return secrets, nil
}
