package domain

// Configuration is the application configuration loaded from YAML.
type Configuration struct {
	Server    ServerConfig    `yaml:"server" json:"server"`
	Logging   LoggingConfig   `yaml:"logging" json:"logging"`
	Deadlines DeadlineConfig  `yaml:"deadlines" json:"deadlines"`
	Assistant AssistantConfig `yaml:"assistant" json:"assistant"`
	Search    SearchConfig    `yaml:"search" json:"search"`
	Tax       TaxConfig       `yaml:"tax" json:"tax"`
}

// ServerConfig configures the web UI.
type ServerConfig struct {
	Addr string `yaml:"addr" json:"addr"`
}

// LoggingConfig configures zap.
type LoggingConfig struct {
	Level       string `yaml:"level" json:"level"`
	Development bool   `yaml:"development" json:"development"`
}

// DeadlineConfig locates the deadline store.
type DeadlineConfig struct {
	Path         string `yaml:"path" json:"path"`
	UpcomingDays int    `yaml:"upcoming_days" json:"upcoming_days"`
}

// AssistantConfig configures the text generation collaborator.
type AssistantConfig struct {
	Model           string `yaml:"model" json:"model"`
	APIKey          string `yaml:"api_key" json:"-"`
	MaxContextChars int    `yaml:"max_context_chars" json:"max_context_chars"`
}

// SearchConfig optionally points at a custom case catalogue.
type SearchConfig struct {
	Catalogue string `yaml:"catalogue" json:"catalogue"`
}

// TaxConfig holds display defaults for the tax tools.
type TaxConfig struct {
	AssessmentYear string `yaml:"assessment_year" json:"assessment_year"`
}

// Defaults used when the configuration file omits a value.
const (
	DefaultServerAddr      = ":8501"
	DefaultDeadlinesPath   = "legal_deadlines.json"
	DefaultUpcomingDays    = 7
	DefaultModel           = "gemini-2.5-pro"
	DefaultMaxContextChars = 2_000_000
	DefaultAssessmentYear  = "2023-2024"
)

// DefaultConfiguration returns a configuration with every default applied.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Server:    ServerConfig{Addr: DefaultServerAddr},
		Logging:   LoggingConfig{Level: "info"},
		Deadlines: DeadlineConfig{Path: DefaultDeadlinesPath, UpcomingDays: DefaultUpcomingDays},
		Assistant: AssistantConfig{Model: DefaultModel, MaxContextChars: DefaultMaxContextChars},
		Tax:       TaxConfig{AssessmentYear: DefaultAssessmentYear},
	}
}
