package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/spf13/pflag"
)

type Arguments struct {
	APIBaseURL     string `env:"SALESDESK_API_URL" envDefault:"http://localhost:8080/api"`
	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	TokenFile      string `env:"SALESDESK_TOKEN_FILE" envDefault:".salesdesk-token"`
	RequestTimeout string `env:"SALESDESK_REQUEST_TIMEOUT" envDefault:"10s"`
	PollInterval   string `env:"SALESDESK_POLL_INTERVAL" envDefault:"2s"`
	PollAttempts   int    `env:"SALESDESK_POLL_ATTEMPTS" envDefault:"5"`
	DevListenAddr  string `env:"SALESDESK_DEV_ADDR" envDefault:"localhost:8080"`
	DevJWTSecret   string `env:"SALESDESK_DEV_SECRET" envDefault:"secret"`
	DevLogin       string `env:"SALESDESK_DEV_LOGIN" envDefault:"admin"`
	DevPassword    string `env:"SALESDESK_DEV_PASSWORD" envDefault:"admin"`
}

// ClientConfig модель настроек клиента к бэкенду заказов
type ClientConfig struct {
	APIBaseURL     string
	TokenFile      string
	RequestTimeout time.Duration
}

// PollConfig модель настроек опроса готовности накладной
type PollConfig struct {
	Interval time.Duration
	Attempts int
}

// DevServerConfig модель настроек локальной заглушки бэкенда
type DevServerConfig struct {
	ListenAddr string
	JWTSecret  string
	Login      string
	Password   string
}

// Config модель настроек приложения
type Config struct {
	LogLevel string
	Client   ClientConfig
	Poll     PollConfig
	Dev      DevServerConfig
}

func NewConfig() Config {

	var args Arguments
	if err := env.Parse(&args); err != nil {
		panic(fmt.Sprintf("Failed to parse enviroment var: %s", err.Error()))
	}

	var (
		apiURL    = pflag.StringP("api", "a", args.APIBaseURL, "Order service base URL.")
		logLevel  = pflag.StringP("log_level", "l", args.LogLevel, "Log level.")
		tokenFile = pflag.StringP("token_file", "t", args.TokenFile, "Path to the stored auth token.")
		timeout   = pflag.StringP("timeout", "w", args.RequestTimeout, "HTTP request timeout.")
		interval  = pflag.StringP("poll_interval", "i", args.PollInterval, "Delay between invoice poll attempts.")
		attempts  = pflag.IntP("poll_attempts", "n", args.PollAttempts, "Invoice poll attempt budget.")
		devAddr   = pflag.StringP("dev_addr", "d", args.DevListenAddr, "Devserver listen address in a form host:port.")
		devSecret = pflag.StringP("dev_secret", "s", args.DevJWTSecret, "Devserver secret to JWT.")
	)
	pflag.Parse()

	return Config{
		LogLevel: *logLevel,
		Client: ClientConfig{
			APIBaseURL:     *apiURL,
			TokenFile:      *tokenFile,
			RequestTimeout: parseDuration(*timeout),
		},
		Poll: PollConfig{
			Interval: parseDuration(*interval),
			Attempts: *attempts,
		},
		Dev: DevServerConfig{
			ListenAddr: *devAddr,
			JWTSecret:  *devSecret,
			Login:      args.DevLogin,
			Password:   args.DevPassword,
		},
	}
}

func DefaultConfig() Config {
	return Config{
		LogLevel: "info",
		Client: ClientConfig{
			APIBaseURL:     "http://localhost:8080/api",
			TokenFile:      ".salesdesk-token",
			RequestTimeout: 10 * time.Second,
		},
		Poll: PollConfig{
			Interval: 2 * time.Second,
			Attempts: 5,
		},
		Dev: DevServerConfig{
			ListenAddr: "localhost:8080",
			JWTSecret:  "secret",
			Login:      "admin",
			Password:   "admin",
		},
	}
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		panic(fmt.Sprintf("Failed to parse duration '%s': %s", value, err.Error()))
	}
	return duration
}
