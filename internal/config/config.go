package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"
)

type Config struct {
	Environment string `yaml:"environment"`
	LogLevel    string `yaml:"logLevel"`

	Server struct {
		Port             int      `yaml:"port"`
		AllowedOrigins   []string `yaml:"allowedOrigins"`
		TriggerRateLimit int      `yaml:"triggerRateLimit"`
		PublicAppURL     string   `yaml:"publicAppUrl"`
	} `yaml:"server"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret     string `yaml:"jwtSecret"`
		WebhookSecret string `yaml:"webhookSecret"`
	} `yaml:"auth"`

	N8N struct {
		WebhookURL string        `yaml:"webhookUrl"`
		Timeout    time.Duration `yaml:"timeout"`
	} `yaml:"n8n"`

	RankLLM struct {
		ServiceURL     string        `yaml:"serviceUrl"`
		Timeout        time.Duration `yaml:"timeout"`
		HealthInterval time.Duration `yaml:"healthInterval"`
	} `yaml:"rankllm"`

	Webhooks struct {
		WaitlistURL    string `yaml:"waitlistUrl"`
		ErrorReportURL string `yaml:"errorReportUrl"`
	} `yaml:"webhooks"`

	AMQP struct {
		URL string `yaml:"url"`
	} `yaml:"amqp"`

	Mail struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		From     string `yaml:"from"`
	} `yaml:"mail"`

	Minio struct {
		Endpoint   string `yaml:"endpoint"`
		AccessKey  string `yaml:"accessKey"`
		SecretKey  string `yaml:"secretKey"`
		BucketName string `yaml:"bucketName"`
		Region     string `yaml:"region"`
		UseSSL     bool   `yaml:"useSSL"`
	} `yaml:"minio"`
}

func defaults() *Config {
	cfg := &Config{Environment: EnvDevelopment, LogLevel: "info"}
	cfg.Server.Port = 8080
	cfg.Server.TriggerRateLimit = 10
	cfg.Server.PublicAppURL = "https://promptmetrics.com"
	cfg.N8N.Timeout = 30 * time.Second
	cfg.RankLLM.Timeout = 300 * time.Second
	cfg.RankLLM.HealthInterval = time.Minute
	cfg.Mail.Port = 587
	cfg.Mail.From = "nao-responda@promptmetrics.com"
	cfg.Minio.BucketName = "analysis-payloads"
	return cfg
}

// Load lê o .env (se existir), o YAML apontado por CONFIG_PATH (se existir)
// e por último as variáveis de ambiente, que sempre vencem.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("erro ao decodificar config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Environment, "ENVIRONMENT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Server.PublicAppURL, "PUBLIC_APP_URL")
	setString(&c.Database.URL, "DATABASE_URL")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.WebhookSecret, "WEBHOOK_SECRET")
	setString(&c.N8N.WebhookURL, "N8N_WEBHOOK_URL")
	setString(&c.RankLLM.ServiceURL, "RANKLLM_SERVICE_URL")
	setString(&c.Webhooks.WaitlistURL, "WAITLIST_WEBHOOK_URL")
	setString(&c.Webhooks.ErrorReportURL, "ERROR_REPORT_WEBHOOK_URL")
	setString(&c.AMQP.URL, "AMQP_URL")
	setString(&c.Mail.Host, "MAIL_HOST")
	setString(&c.Mail.User, "MAIL_USER")
	setString(&c.Mail.Password, "MAIL_PASS")
	setString(&c.Mail.From, "MAIL_FROM")
	setString(&c.Minio.Endpoint, "MINIO_ENDPOINT")
	setString(&c.Minio.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.Minio.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.Minio.BucketName, "MINIO_BUCKET")
	setString(&c.Minio.Region, "MINIO_REGION")

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = splitList(v)
	}

	for _, item := range []struct {
		key string
		dst *int
	}{
		{"PORT", &c.Server.Port},
		{"MAIL_PORT", &c.Mail.Port},
		{"TRIGGER_RATE_LIMIT", &c.Server.TriggerRateLimit},
	} {
		if v := os.Getenv(item.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("%s inválido: %w", item.key, err)
			}
			*item.dst = n
		}
	}

	for _, item := range []struct {
		key string
		dst *time.Duration
	}{
		{"N8N_TIMEOUT", &c.N8N.Timeout},
		{"RANKLLM_TIMEOUT", &c.RankLLM.Timeout},
		{"RANKLLM_HEALTH_INTERVAL", &c.RankLLM.HealthInterval},
	} {
		if v := os.Getenv(item.key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s inválido: %w", item.key, err)
			}
			*item.dst = d
		}
	}

	if v := os.Getenv("MINIO_USE_SSL"); v != "" {
		c.Minio.UseSSL, _ = strconv.ParseBool(v)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == EnvProduction
}

// AllowedOrigins devolve a allow-list de CORS. Fora de produção os servidores
// locais do front (vite e next) também são liberados.
func (c *Config) AllowedOrigins() []string {
	origins := append([]string{}, c.Server.AllowedOrigins...)
	if !c.IsProduction() {
		origins = append(origins, "http://localhost:5173", "http://localhost:3000")
	}
	return origins
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
