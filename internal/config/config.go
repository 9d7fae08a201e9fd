package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Config хранит конфигурацию сервера
type Config struct {
	ServerHost       string `json:"server_host"`
	ServerPort       int    `json:"server_port"`
	DatabaseURL      string `json:"database_url"`
	PgMigrationsPath string `json:"pg_migrations_path"`
	LogLevel         string `json:"log_level"`
}

// NewConfig инициализирует конфигурацию: значения по умолчанию, .env,
// переменные окружения, JSON-файл и флаги командной строки
func NewConfig() *Config {

	viper.SetDefault("SERVER_HOST", "127.0.0.1") // Значения по умолчанию
	viper.SetDefault("SERVER_PORT", 8080)
	viper.SetDefault("DATABASE_URL", "postgres://localhost:5432/videos?sslmode=disable")
	viper.SetDefault("PG_MIGRATIONS_PATH", "internal/migrations")
	viper.SetDefault("LOG_LEVEL", "info")

	viper.AutomaticEnv()

	// Читаем .env, если есть (не переопределяет переменные окружения!)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // Ошибку игнорируем, если файла нет

	// Определяем флаги, но НЕ задаем в них значения по умолчанию
	serverHost := flag.String("host", "", "server host")
	serverPort := flag.String("port", "", "server port")
	databaseURL := flag.String("d", "", "PostgreSQL DSN")
	migrationsPath := flag.String("m", "", "path to migrations directory")
	logLevel := flag.String("l", "", "log level")
	configPath := flag.String("c", "", "path to JSON config file")
	flag.StringVar(configPath, "config", "", "path to JSON config file")

	flag.Parse()

	// Загружаем JSON-конфигурацию (если указана)
	if *configPath == "" {
		*configPath = os.Getenv("CONFIG")
	}

	cfg := &Config{
		ServerHost:       viper.GetString("SERVER_HOST"),
		ServerPort:       viper.GetInt("SERVER_PORT"),
		DatabaseURL:      viper.GetString("DATABASE_URL"),
		PgMigrationsPath: viper.GetString("PG_MIGRATIONS_PATH"),
		LogLevel:         viper.GetString("LOG_LEVEL"),
	}

	if *configPath != "" {
		data, err := os.ReadFile(*configPath)
		if err != nil {
			log.Printf("Не удалось прочитать JSON-файл конфигурации %q: %v", *configPath, err)
		} else if err := json.Unmarshal(data, cfg); err != nil {
			log.Printf("Ошибка разбора JSON-файла конфигурации: %v", err)
		}
	}

	// Если флаг передан — он имеет высший приоритет
	if *serverHost != "" {
		cfg.ServerHost = *serverHost
	}
	if *serverPort != "" {
		if port, err := strconv.Atoi(*serverPort); err == nil {
			cfg.ServerPort = port
		} else {
			log.Printf("Некорректный порт %q, оставлен %d", *serverPort, cfg.ServerPort)
		}
	}
	if *databaseURL != "" {
		cfg.DatabaseURL = *databaseURL
	}
	if *migrationsPath != "" {
		cfg.PgMigrationsPath = *migrationsPath
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}

	log.Printf("Инициализация конфигурации: ServerHost=%s", cfg.ServerHost)
	log.Printf("Инициализация конфигурации: ServerPort=%d", cfg.ServerPort)
	log.Printf("Инициализация конфигурации: DatabaseURL=%s", cfg.DatabaseURL)
	log.Printf("Инициализация конфигурации: PgMigrationsPath=%s", cfg.PgMigrationsPath)

	// Проверка корректности конфигурации
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Ошибка конфигурации: %v\n", err)
	}

	return cfg
}

// Address возвращает адрес прослушивания в виде host:port
func (cfg *Config) Address() string {
	return net.JoinHostPort(cfg.ServerHost, strconv.Itoa(cfg.ServerPort))
}

// Validate проверяет корректность конфигурации
func (cfg *Config) Validate() error {
	if cfg.ServerHost == "" {
		return fmt.Errorf("адрес сервера не может быть пустым")
	}
	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return fmt.Errorf("некорректный порт сервера: %d", cfg.ServerPort)
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("адрес подключения к БД не может быть пустым")
	}
	return nil
}
