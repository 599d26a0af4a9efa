package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8080"
	healthTimeout  = 5 * time.Second
	slowResponse   = 1 * time.Second
	healthPath     = "/healthz"
	readinessPath  = "/readyz"
	maxBodyPreview = 512
)

type HealthCheckCommand struct {
	client *http.Client
}

func (c *HealthCheckCommand) Name() string {
	return "health-check"
}

func (c *HealthCheckCommand) Description() string {
	return "Check /healthz and /readyz of a running instance"
}

func (c *HealthCheckCommand) Run(args []string) error {
	base := getEnv("FISSUREBOT_URL", defaultBaseURL)
	if len(args) > 0 {
		base = args[0]
	}
	base = strings.TrimRight(base, "/")

	PrintHeader(fmt.Sprintf("Health Check (%s)", base))

	for _, path := range []string{healthPath, readinessPath} {
		start := time.Now()
		if err := c.check(base + path); err != nil {
			PrintError("%s failed: %v", path, err)
			return err
		}
		duration := time.Since(start)

		if duration > slowResponse {
			PrintWarning("%s slow response time (%v)", path, duration)
		} else {
			PrintSuccess("%s passed (response time: %v)", path, duration)
		}
	}
	return nil
}

func (c *HealthCheckCommand) check(url string) error {
	client := c.client
	if client == nil {
		client = &http.Client{Timeout: healthTimeout}
	}

	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodyPreview))
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
