package config

import (
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	AWS             AWSConfig            `mapstructure:"aws"`
	AI              AIConfig             `mapstructure:"ai"`
	Newsletter      NewsletterConfig     `mapstructure:"newsletter"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type ServiceType `mapstructure:"type"`
	Port string      `mapstructure:"port"`
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
	// Domain suffixes table, bucket and metric namespace names so that
	// DEVELOPMENT and PRODUCTION stacks never collide.
	Domain            string `mapstructure:"domain"`
	TemplatesBucket   string `mapstructure:"templatesBucket"`
	NewslettersBucket string `mapstructure:"newslettersBucket"`
	SenderAddress     string `mapstructure:"senderAddress"`
}

type AIProvider string

const (
	Bedrock AIProvider = "BEDROCK"
	Gemini  AIProvider = "GEMINI"
)

type AIConfig struct {
	Provider AIProvider `mapstructure:"provider"`
	Model    string     `mapstructure:"model"`
}

// FailurePolicy controls what a newsletter run does when one user fails.
type FailurePolicy string

const (
	// AbortRun stops the whole run on the first user failure.
	AbortRun FailurePolicy = "ABORT"
	// ContinueRun records the failure and keeps processing remaining users.
	ContinueRun FailurePolicy = "CONTINUE"
)

type NewsletterConfig struct {
	TemplateName  string        `mapstructure:"templateName"`
	Subject       string        `mapstructure:"subject"`
	LookbackDays  int           `mapstructure:"lookbackDays"`
	OnUserFailure FailurePolicy `mapstructure:"onUserFailure"`
	Workers       int           `mapstructure:"workers"`
	CronSpec      string        `mapstructure:"cronSpec"`
}

type ExternalClientConfig struct {
	Polygon PolygonConfig `mapstructure:"polygon"`
}

type PolygonConfig struct {
	BaseURL string `mapstructure:"baseUrl"`
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	viper.AddConfigPath(path)
	viper.SetConfigName("appsettings")
	viper.SetConfigType("yaml")

	err := viper.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	if cfg.Newsletter.TemplateName == "" {
		cfg.Newsletter.TemplateName = "default"
	}
	if cfg.Newsletter.LookbackDays <= 0 {
		cfg.Newsletter.LookbackDays = 7
	}
	if cfg.Newsletter.OnUserFailure == "" {
		cfg.Newsletter.OnUserFailure = AbortRun
	}
	if cfg.Newsletter.Workers <= 0 {
		cfg.Newsletter.Workers = 1
	}
	return &cfg, nil
}
