package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host string `yaml:"host"`
		Port int    `yaml:"port"`
		Env  string `yaml:"env"`
	} `yaml:"server"`

	Database struct {
		DSN string `yaml:"url"`
	} `yaml:"database"`

	JWT struct {
		Secret string `yaml:"secret"`
		Issuer string `yaml:"issuer"`
		// Audience проверяется при валидации access токена
		Audience string `yaml:"audience"`
		// AccessTTL - срок жизни access токена в минутах
		AccessTTL int `yaml:"access_ttl"`
		// RefreshTTL - срок жизни refresh токена в днях
		RefreshTTL int `yaml:"refresh_ttl"`
	} `yaml:"jwt"`
}

var AppConfig *Config

// LoadConfig загружает конфигурацию: переменные окружения имеют приоритет,
// иначе читается config.yaml. Без JWT secret сервис не запускается.
func LoadConfig() {
	var cfg Config

	// .env (если есть) подхватывается до чтения окружения
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	serverEnv := os.Getenv("SERVER_ENV")
	portStr := os.Getenv("SERVER_PORT")
	jwtSecret := os.Getenv("JWT_SECRET")

	if dbURL == "" {
		log.Println("Загрузка из config.yaml (режим НЕ-тест)")

		configPath := os.Getenv("CONFIG_PATH")
		if configPath == "" {
			configPath = "config/config.yaml"
		}

		f, err := os.Open(configPath)
		if err != nil {
			log.Fatalf("Failed to open config file at %s: %v", configPath, err)
		}
		defer f.Close()

		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("Failed to parse config file at %s: %v", configPath, err)
		}

		applyDefaults(&cfg)
		AppConfig = &cfg
		return
	}

	log.Println("Загрузка конфигурации из переменных окружения")

	cfg.Database.DSN = dbURL
	cfg.Server.Env = serverEnv
	cfg.Server.Port, _ = strconv.Atoi(portStr)
	cfg.JWT.Secret = jwtSecret

	applyDefaults(&cfg)
	AppConfig = &cfg
}

func applyDefaults(cfg *Config) {
	if cfg.JWT.Secret == "" {
		// Подписывающий ключ - это якорь доверия, без него работать нельзя
		log.Fatal("JWT secret is not configured (set JWT_SECRET or jwt.secret)")
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "taskhub"
	}
	if cfg.JWT.Audience == "" {
		cfg.JWT.Audience = "taskhub-api"
	}
	if cfg.JWT.AccessTTL <= 0 {
		cfg.JWT.AccessTTL = 15 // минут
	}
	if cfg.JWT.RefreshTTL <= 0 {
		cfg.JWT.RefreshTTL = 7 // дней
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 4000
	}
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}
