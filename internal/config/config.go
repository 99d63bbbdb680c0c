package config

import (
	"log"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// Depot used when DEPOT_LAT/DEPOT_LNG are not configured: the central hub in
// Colombo where every driver shift begins.
const (
	defaultDepotLat = 6.9271
	defaultDepotLng = 79.8612
)

type Config struct {
	ServerPort   string `mapstructure:"SERVER_PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	ClientOrigin string `mapstructure:"CLIENT_ORIGIN"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	StripeAPIKey string
	DepotLat     float64
	DepotLng     float64
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName(".env") // Name of config file (without extension)
	viper.SetConfigType("env")

	viper.AutomaticEnv() // Read in environment variables that match

	err := viper.ReadInConfig()
	if err != nil {
		// Allow a missing .env file; everything can come from the environment.
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("No .env file found.")
		} else {
			return nil, err
		}
	}

	var cfg Config
	err = viper.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}

	cfg.StripeAPIKey = os.Getenv("STRIPE_API_KEY")
	cfg.DepotLat = envFloat("DEPOT_LAT", defaultDepotLat)
	cfg.DepotLng = envFloat("DEPOT_LNG", defaultDepotLng)

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return &cfg, nil
}

func envFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("Ignoring malformed %s=%q", key, v)
		return fallback
	}
	return f
}
