package core

import (
	"strings"
	"testing"
	"time"
)

func TestValidateAppliesDefaults(t *testing.T) {
	config := &LinkuriousConfig{Host: "linkurious.example.com"}
	config.Validate(
		WithHost,
		WithPort(443),
		WithTimeout(30*time.Second),
		WithMaxConnections(10),
		WithUserAgent,
	)
	if config.Port != 443 {
		t.Errorf("Port = %d, want default 443", config.Port)
	}
	if config.Timeout == nil || *config.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s", config.Timeout)
	}
	if config.MaxConnections != 10 {
		t.Errorf("MaxConnections = %d, want default 10", config.MaxConnections)
	}
	if !strings.Contains(config.UserAgent, "go-linkurious-client") {
		t.Errorf("UserAgent = %q, want default client identifier", config.UserAgent)
	}
}

func TestValidateKeepsExplicitValues(t *testing.T) {
	timeout := 5 * time.Second
	config := &LinkuriousConfig{
		Host:           "linkurious.example.com",
		Port:           8443,
		Timeout:        &timeout,
		MaxConnections: 2,
		UserAgent:      "custom-agent",
	}
	config.Validate(
		WithHost,
		WithPort(443),
		WithTimeout(30*time.Second),
		WithMaxConnections(10),
		WithUserAgent,
	)
	if config.Port != 8443 || *config.Timeout != 5*time.Second ||
		config.MaxConnections != 2 || config.UserAgent != "custom-agent" {
		t.Errorf("explicit config values were overridden: %+v", config)
	}
}

func TestValidatePanicsOnEmptyHost(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Validate(WithHost) did not panic for empty host")
		}
	}()
	config := &LinkuriousConfig{}
	config.Validate(WithHost)
}
