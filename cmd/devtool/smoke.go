package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const headerAPIKey = "X-API-Key"

// smokeSimulation is a small request every relic table carries.
var smokeSimulation = map[string]any{
	"primary": map[string]any{"relics": []string{"Axi L4"}, "refinement": "radiant"},
	"style":   "4b4",
	"cycles":  5,
	"seed":    1,
}

// SmokeCommand exercises the public API of a running instance.
type SmokeCommand struct {
	client *http.Client
}

func (c *SmokeCommand) Name() string {
	return "smoke"
}

func (c *SmokeCommand) Description() string {
	return "Run API smoke checks against a running instance"
}

func (c *SmokeCommand) Run(args []string) error {
	base := getEnv("FISSUREBOT_URL", defaultBaseURL)
	if len(args) > 0 {
		base = args[0]
	}
	base = strings.TrimRight(base, "/")
	apiKey := os.Getenv("API_KEY")

	PrintHeader(fmt.Sprintf("Smoke tests (%s)", base))

	checks := []struct {
		name   string
		method string
		path   string
		body   any
		decode func([]byte) error
	}{
		{name: "health", method: http.MethodGet, path: healthPath},
		{name: "fissure list", method: http.MethodGet, path: "/api/v1/fissures", decode: expectArray},
		{name: "simulate", method: http.MethodPost, path: "/api/v1/relics/simulate", body: smokeSimulation, decode: expectRuns},
	}

	failed := 0
	for _, ch := range checks {
		body, err := c.do(ch.method, base+ch.path, apiKey, ch.body)
		if err == nil && ch.decode != nil {
			err = ch.decode(body)
		}
		if err != nil {
			failed++
			PrintError("%s: %v", ch.name, err)
			continue
		}
		PrintSuccess("%s", ch.name)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d smoke checks failed", failed, len(checks))
	}
	return nil
}

func (c *SmokeCommand) do(method, url, apiKey string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set(headerAPIKey, apiKey)
	}

	client := c.client
	if client == nil {
		client = &http.Client{Timeout: healthTimeout}
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		if len(body) > maxBodyPreview {
			body = body[:maxBodyPreview]
		}
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}

func expectArray(body []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(body, &items); err != nil {
		return fmt.Errorf("expected a JSON array: %w", err)
	}
	return nil
}

func expectRuns(body []byte) error {
	var res struct {
		Runs int `json:"runs"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return fmt.Errorf("decode simulation: %w", err)
	}
	if res.Runs == 0 {
		return fmt.Errorf("simulation reported zero runs")
	}
	return nil
}
