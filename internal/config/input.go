package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/lexdesk/legal-assistant/internal/domain"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file values.
const (
	EnvAPIKey        = "GEMINI_API_KEY"
	EnvDeadlinesPath = "LEXDESK_DEADLINES"
)

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true, "dpanic": true, "panic": true, "fatal": true}

// InputParser handles parsing of configuration and tax input files
type InputParser struct {
	getenv func(string) string
}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{getenv: os.Getenv}
}

// Load returns the configuration from filename, or defaults when filename is
// empty. Environment overrides are applied in both cases.
func (ip *InputParser) Load(filename string) (*domain.Configuration, error) {
	if strings.TrimSpace(filename) == "" {
		config := domain.DefaultConfiguration()
		ip.applyEnvironment(config)
		if err := ip.ValidateConfiguration(config); err != nil {
			return nil, fmt.Errorf("configuration validation failed: %w", err)
		}
		return config, nil
	}
	return ip.LoadFromFile(filename)
}

// LoadFromFile loads configuration from a YAML file on top of the defaults
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	config := domain.DefaultConfiguration()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	ip.applyEnvironment(config)

	if err := ip.ValidateConfiguration(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (ip *InputParser) applyEnvironment(config *domain.Configuration) {
	if v := strings.TrimSpace(ip.getenv(EnvAPIKey)); v != "" && config.Assistant.APIKey == "" {
		config.Assistant.APIKey = v
	}
	if v := strings.TrimSpace(ip.getenv(EnvDeadlinesPath)); v != "" {
		config.Deadlines.Path = v
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if strings.TrimSpace(config.Server.Addr) == "" {
		return fmt.Errorf("server address is required")
	}
	if level := strings.ToLower(strings.TrimSpace(config.Logging.Level)); level != "" && !validLogLevels[level] {
		return fmt.Errorf("unknown log level %q", config.Logging.Level)
	}
	if strings.TrimSpace(config.Deadlines.Path) == "" {
		return fmt.Errorf("deadlines path is required")
	}
	if config.Deadlines.UpcomingDays < 0 || config.Deadlines.UpcomingDays > 365 {
		return fmt.Errorf("upcoming days must be between 0 and 365")
	}
	if strings.TrimSpace(config.Assistant.Model) == "" {
		return fmt.Errorf("assistant model is required")
	}
	if config.Assistant.MaxContextChars <= 0 {
		return fmt.Errorf("assistant max context chars must be positive")
	}
	return nil
}

// LoadTaxInput loads a tax calculation request from a YAML file
func (ip *InputParser) LoadTaxInput(filename string) (*domain.TaxInput, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var input domain.TaxInput
	if err := yaml.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateTaxInput(&input); err != nil {
		return nil, fmt.Errorf("tax input validation failed: %w", err)
	}
	return &input, nil
}

// ValidateTaxInput validates a tax calculation request
func (ip *InputParser) ValidateTaxInput(input *domain.TaxInput) error {
	if err := domain.RequireRegime("tax.input", input.Regime); err != nil {
		return err
	}
	if err := input.Income.Validate(); err != nil {
		return err
	}
	if err := input.Deductions.Validate(); err != nil {
		return err
	}
	// The UI floors house property at -2L; files are not bound by that.
	return nil
}
