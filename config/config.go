package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"axiapac.com/hrdesk/desk"
	"axiapac.com/hrdesk/infrastructure/devops"
	"axiapac.com/hrdesk/utils"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	API    APIConfig    `yaml:"api"`
	Listen string       `yaml:"listen" validate:"required"`
	Locale LocaleConfig `yaml:"locale"`
	Export ExportConfig `yaml:"export"`
	Notify NotifyConfig `yaml:"notify"`
}

// APIConfig locates the HR payroll service. JWTSecret (base64) mints short-lived
// bearer tokens and takes precedence over the static Token.
type APIConfig struct {
	BaseURL   string `yaml:"base_url" validate:"required,url"`
	Token     string `yaml:"token"`
	JWTSecret string `yaml:"jwt_secret" validate:"omitempty,base64"`
}

type LocaleConfig struct {
	Timezone       string `yaml:"timezone"`
	DateLayout     string `yaml:"date_layout" validate:"required"`
	TimeLayout     string `yaml:"time_layout" validate:"required"`
	DateTimeLayout string `yaml:"datetime_layout" validate:"required"`
}

// ExportConfig enables the S3 archive of slip exports when Bucket is set.
type ExportConfig struct {
	Bucket string `yaml:"bucket"`
	Prefix string `yaml:"prefix"`
}

// NotifyConfig enables Slack notices when SlackToken is set, and payroll run
// emails when EmailFrom and EmailTo (comma separated) are set.
type NotifyConfig struct {
	SlackToken   string `yaml:"slack_token"`
	InfoChannel  string `yaml:"info_channel"`
	ErrorChannel string `yaml:"error_channel"`
	EmailFrom    string `yaml:"email_from" validate:"omitempty,email"`
	EmailTo      string `yaml:"email_to"`
}

func (n NotifyConfig) Recipients() []string {
	var out []string
	for _, addr := range strings.Split(n.EmailTo, ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			out = append(out, addr)
		}
	}
	return out
}

func Default() Config {
	loc := desk.DefaultLocale()
	return Config{
		API:    APIConfig{BaseURL: "http://localhost:8080/api/v1"},
		Listen: ":8090",
		Locale: LocaleConfig{
			DateLayout:     loc.DateLayout,
			TimeLayout:     loc.TimeLayout,
			DateTimeLayout: loc.DateTimeLayout,
		},
		Export: ExportConfig{Prefix: "payroll-slips"},
	}
}

// Sources lists where Load reads from. Later sources override earlier ones.
type Sources struct {
	File         string
	SSMParameter string
	LookupEnv    func(key string) (string, bool)
	// LoadParameter decodes an SSM YAML parameter over out.
	LoadParameter func(ctx context.Context, name string, out any) error
}

// FromEnvironment reads HRDESK_CONFIG and HRDESK_SSM_PARAMETER for the file and parameter names.
func FromEnvironment() Sources {
	return Sources{
		File:          os.Getenv("HRDESK_CONFIG"),
		SSMParameter:  os.Getenv("HRDESK_SSM_PARAMETER"),
		LookupEnv:     os.LookupEnv,
		LoadParameter: devops.LoadYAMLParameter,
	}
}

// Load applies defaults, the YAML file, the SSM parameter and HRDESK_* variables in that order.
func Load(ctx context.Context, src Sources) (Config, error) {
	cfg := Default()

	if src.File != "" {
		b, err := os.ReadFile(src.File)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", src.File, err)
		}
	}

	if src.SSMParameter != "" && src.LoadParameter != nil {
		if err := src.LoadParameter(ctx, src.SSMParameter, &cfg); err != nil {
			return cfg, fmt.Errorf("load parameter %s: %w", src.SSMParameter, err)
		}
	}

	if src.LookupEnv != nil {
		applyEnv(&cfg, src.LookupEnv)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	vars := map[string]*string{
		"HRDESK_API_BASE_URL":           &cfg.API.BaseURL,
		"HRDESK_API_TOKEN":              &cfg.API.Token,
		"HRDESK_API_JWT_SECRET":         &cfg.API.JWTSecret,
		"HRDESK_LISTEN":                 &cfg.Listen,
		"HRDESK_LOCALE_TIMEZONE":        &cfg.Locale.Timezone,
		"HRDESK_LOCALE_DATE_LAYOUT":     &cfg.Locale.DateLayout,
		"HRDESK_LOCALE_TIME_LAYOUT":     &cfg.Locale.TimeLayout,
		"HRDESK_LOCALE_DATETIME_LAYOUT": &cfg.Locale.DateTimeLayout,
		"HRDESK_EXPORT_BUCKET":          &cfg.Export.Bucket,
		"HRDESK_EXPORT_PREFIX":          &cfg.Export.Prefix,
		"HRDESK_SLACK_TOKEN":            &cfg.Notify.SlackToken,
		"HRDESK_SLACK_INFO_CHANNEL":     &cfg.Notify.InfoChannel,
		"HRDESK_SLACK_ERROR_CHANNEL":    &cfg.Notify.ErrorChannel,
		"HRDESK_EMAIL_FROM":             &cfg.Notify.EmailFrom,
		"HRDESK_EMAIL_TO":               &cfg.Notify.EmailTo,
	}
	for key, field := range vars {
		if v, ok := lookup(key); ok {
			*field = strings.TrimSpace(v)
		}
	}
}

// DeskLocale resolves the timezone. An empty timezone keeps the Brisbane default.
func (c Config) DeskLocale() (desk.Locale, error) {
	loc := desk.Locale{
		Location:       utils.BrisbaneTZ,
		DateLayout:     c.Locale.DateLayout,
		TimeLayout:     c.Locale.TimeLayout,
		DateTimeLayout: c.Locale.DateTimeLayout,
	}
	if c.Locale.Timezone != "" {
		tz, err := time.LoadLocation(c.Locale.Timezone)
		if err != nil {
			return loc, fmt.Errorf("load timezone: %w", err)
		}
		loc.Location = tz
	}
	return loc, nil
}
