package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Database      Database      `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	Apify         Apify         `mapstructure:",squash"`
	Cpm           Cpm           `mapstructure:",squash"`
	AnalyticsSync AnalyticsSync `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN         string `mapstructure:"-"`
	Driver      string `mapstructure:"database_driver"`
	Password    string `mapstructure:"database_password"`
	URL         string `mapstructure:"database_url"`
	User        string `mapstructure:"database_user"`
	AutoMigrate bool   `mapstructure:"database_auto_migrate"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

// Apify configura o provedor de scraping (actor runs + datasets)
type Apify struct {
	BaseURL          string        `mapstructure:"apify_base_url"`
	Token            string        `mapstructure:"apify_token"`
	TikTokActor      string        `mapstructure:"apify_tiktok_actor"`
	InstagramActor   string        `mapstructure:"apify_instagram_actor"`
	MaxAttempts      int           `mapstructure:"apify_max_attempts"`
	RetryBaseDelay   time.Duration `mapstructure:"apify_retry_base_delay"`
	PollInterval     time.Duration `mapstructure:"apify_poll_interval"`
	MaxPolls         int           `mapstructure:"apify_max_polls"`
	RequestTimeout   time.Duration `mapstructure:"apify_request_timeout"`
	BreakerThreshold int           `mapstructure:"apify_breaker_threshold"`
	BreakerTimeout   time.Duration `mapstructure:"apify_breaker_timeout"`
}

// Cpm agrupa as regras monetárias. Nunca ler estes valores como globais:
// eles são injetados na calculadora via domain.CpmSettings.
type Cpm struct {
	Rate           float64 `mapstructure:"cpm_rate"`
	WindowDays     int     `mapstructure:"cpm_window_days"`
	PostCap        float64 `mapstructure:"cpm_post_cap"`
	UserMonthlyCap float64 `mapstructure:"cpm_user_monthly_cap"`
}

type AnalyticsSync struct {
	CronSchedule        string        `mapstructure:"analytics_sync_cron"`
	Enabled             bool          `mapstructure:"analytics_sync_enabled"`
	PostTimeout         time.Duration `mapstructure:"analytics_sync_post_timeout"`
	MaxConcurrentPosts  int           `mapstructure:"analytics_sync_max_concurrent_posts"`
	RequestDelaySeconds int           `mapstructure:"analytics_sync_request_delay_seconds"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/creators?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")
	viper.SetDefault("DATABASE_AUTO_MIGRATE", true)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")

	viper.SetDefault("APIFY_BASE_URL", "https://api.apify.com/v2")
	viper.SetDefault("APIFY_TOKEN", "")
	viper.SetDefault("APIFY_TIKTOK_ACTOR", "clockworks~tiktok-scraper")
	viper.SetDefault("APIFY_INSTAGRAM_ACTOR", "apify~instagram-scraper")
	viper.SetDefault("APIFY_MAX_ATTEMPTS", 3)        // tentativas totais por post
	viper.SetDefault("APIFY_RETRY_BASE_DELAY", "5s") // espera = base * tentativa
	viper.SetDefault("APIFY_POLL_INTERVAL", "5s")    // intervalo entre consultas do run
	viper.SetDefault("APIFY_MAX_POLLS", 60)          // 60 x 5s = ~5 minutos
	viper.SetDefault("APIFY_REQUEST_TIMEOUT", "30s") // timeout de cada chamada HTTP
	viper.SetDefault("APIFY_BREAKER_THRESHOLD", 5)   // falhas transitórias consecutivas
	viper.SetDefault("APIFY_BREAKER_TIMEOUT", "2m")  // tempo aberto antes do half-open

	viper.SetDefault("CPM_RATE", 1.5)
	viper.SetDefault("CPM_WINDOW_DAYS", 28)
	viper.SetDefault("CPM_POST_CAP", 350)
	viper.SetDefault("CPM_USER_MONTHLY_CAP", 5000)

	viper.SetDefault("ANALYTICS_SYNC_CRON", "0 */6 * * *")      // A cada 6 horas
	viper.SetDefault("ANALYTICS_SYNC_ENABLED", false)           // Habilitar sincronização agendada
	viper.SetDefault("ANALYTICS_SYNC_POST_TIMEOUT", "6m")       // Limite por post (inclui polling)
	viper.SetDefault("ANALYTICS_SYNC_MAX_CONCURRENT_POSTS", 1)  // 1 = sequencial
	viper.SetDefault("ANALYTICS_SYNC_REQUEST_DELAY_SECONDS", 0) // Pausa entre posts

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile()

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// Validate rejeita combinações que tornariam o cálculo de CPM ou o polling inválidos
func (c *Config) Validate() error {
	if c.Cpm.Rate < 0 || c.Cpm.PostCap < 0 || c.Cpm.UserMonthlyCap < 0 {
		return fmt.Errorf("configuração de CPM inválida: valores monetários não podem ser negativos")
	}
	if c.Cpm.WindowDays <= 0 {
		return fmt.Errorf("configuração de CPM inválida: CPM_WINDOW_DAYS deve ser maior que zero")
	}
	if c.Apify.MaxAttempts <= 0 {
		return fmt.Errorf("configuração do Apify inválida: APIFY_MAX_ATTEMPTS deve ser maior que zero")
	}
	if c.Apify.MaxPolls <= 0 {
		return fmt.Errorf("configuração do Apify inválida: APIFY_MAX_POLLS deve ser maior que zero")
	}
	if c.AnalyticsSync.MaxConcurrentPosts <= 0 {
		c.AnalyticsSync.MaxConcurrentPosts = 1
	}
	return nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
