package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Bot     BotConfig
	Session SessionConfig
}

type AppConfig struct {
	Port     string
	Env      string
	Timezone string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// BotConfig holds the shared secret the external chat transport must present
// on every inbound event, plus the booking mode selector.
type BotConfig struct {
	Token       string
	BookingMode string
}

type SessionConfig struct {
	TTL time.Duration
}

// Booking mode values. "patient" keys appointments by the linked patient,
// "chat_user" keys them directly by the chat user and collects a full name.
const (
	BookingModePatient  = "patient"
	BookingModeChatUser = "chat_user"
)

const DefaultTimezone = "Asia/Yakutsk"

var (
	ErrMissingBotToken = errors.New("BOT_TOKEN is not set")
	ErrMissingDBName   = errors.New("DB_NAME is not set")
)

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env file is fine when everything comes from the environment.
	_ = viper.ReadInConfig()

	sessionTTL, err := time.ParseDuration(viper.GetString("SESSION_TTL"))
	if err != nil {
		sessionTTL = 30 * time.Minute
	}

	timezone := viper.GetString("APP_TIMEZONE")
	if timezone == "" {
		timezone = DefaultTimezone
	}

	bookingMode := viper.GetString("BOOKING_MODE")
	if bookingMode == "" {
		bookingMode = BookingModePatient
	}

	config := &Config{
		App: AppConfig{
			Port:     viper.GetString("APP_PORT"),
			Env:      viper.GetString("APP_ENV"),
			Timezone: timezone,
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Bot: BotConfig{
			Token:       viper.GetString("BOT_TOKEN"),
			BookingMode: bookingMode,
		},
		Session: SessionConfig{
			TTL: sessionTTL,
		},
	}

	if config.Bot.Token == "" {
		return nil, ErrMissingBotToken
	}
	if config.DB.Name == "" {
		return nil, ErrMissingDBName
	}

	return config, nil
}
