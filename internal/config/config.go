package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode      Mode   `mapstructure:"mode"`
	HTTPAddr  string `mapstructure:"http_addr"`
	PublicURL string `mapstructure:"public_url"`

	DBDriver string `mapstructure:"db_driver"`
	DBDSN    string `mapstructure:"db_dsn"`

	QuestionsDir string `mapstructure:"questions_dir"` // dep-Q.json, Anxiety-Q.json, stress-Q.json
	DataDir      string `mapstructure:"data_dir"`
	ResponsesLog string `mapstructure:"responses_log"` // key under DataDir
	Recorder     string `mapstructure:"recorder"`      // file|sql|both

	DefaultQuestionCount int `mapstructure:"default_question_count"`
	EntryMinLength       int `mapstructure:"entry_min_length"`

	ClassifierURL     string        `mapstructure:"classifier_url"`
	ClassifierTimeout time.Duration `mapstructure:"classifier_timeout"`
	ModelVersion      string        `mapstructure:"model_version"`

	AuthHMACSecret string `mapstructure:"auth_hmac_secret"`
	AdminUser      string `mapstructure:"admin_user"`
	AdminPassHash  string `mapstructure:"admin_pass_hash"` // bcrypt

	CORSOriginsOnline  []string `mapstructure:"cors_origins_online"`
	CORSOriginsOffline []string `mapstructure:"cors_origins_offline"`

	EnableGoogleAuth   bool   `mapstructure:"enable_google_auth"`
	GoogleClientID     string `mapstructure:"google_client_id"`
	GoogleTokenInfoURL string `mapstructure:"google_tokeninfo_url"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", string(ModeOffline))
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("public_url", "")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("db_dsn", "")
	v.SetDefault("questions_dir", "./questions")
	v.SetDefault("data_dir", "./data")
	v.SetDefault("responses_log", "responses.jsonl")
	v.SetDefault("recorder", "file")
	v.SetDefault("default_question_count", 20)
	v.SetDefault("entry_min_length", 50)
	v.SetDefault("classifier_url", "http://localhost:8500/classify")
	v.SetDefault("classifier_timeout", "10s")
	v.SetDefault("model_version", "improved_v1")
	v.SetDefault("auth_hmac_secret", "supersecret-dev-key")
	v.SetDefault("admin_user", "admin")
	v.SetDefault("admin_pass_hash", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji")
	v.SetDefault("cors_origins_online", "https://mindcheck.example.com")
	v.SetDefault("cors_origins_offline", "http://localhost:3000,http://localhost:5173")
	v.SetDefault("enable_google_auth", false)
	v.SetDefault("google_client_id", "")
	v.SetDefault("google_tokeninfo_url", "https://oauth2.googleapis.com/tokeninfo")
}

// Load reads defaults, then an optional mindcheck.yaml from paths (or "." and
// "./config"), then MINDCHECK_* environment variables.
func Load(paths ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("mindcheck")
	v.SetConfigType("yaml")
	if len(paths) == 0 {
		paths = []string{".", "./config"}
	}
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("MINDCHECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		log.Println("WARN: [Config] mindcheck.yaml not found. Using environment variables and defaults.")
	} else {
		log.Printf("INFO: [Config] using %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.CORSOriginsOnline = trimAll(cfg.CORSOriginsOnline)
	cfg.CORSOriginsOffline = trimAll(cfg.CORSOriginsOffline)
	cfg.Mode = Mode(strings.ToLower(string(cfg.Mode)))
	cfg.Recorder = strings.ToLower(strings.TrimSpace(cfg.Recorder))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Mode {
	case ModeOffline, ModeOnline:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	switch c.Recorder {
	case "file", "sql", "both":
	default:
		return fmt.Errorf("config: recorder must be file, sql or both, got %q", c.Recorder)
	}
	if c.DefaultQuestionCount <= 0 {
		return fmt.Errorf("config: default_question_count must be positive")
	}
	if c.EnableGoogleAuth && c.GoogleClientID == "" {
		return fmt.Errorf("config: google_client_id required when google auth is enabled")
	}
	return nil
}

// CORSOrigins returns the allowed origins for the configured mode.
func (c Config) CORSOrigins() []string {
	if c.Mode == ModeOnline {
		return c.CORSOriginsOnline
	}
	return c.CORSOriginsOffline
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, p := range in {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
