package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	JWT      JWT
	Upload   Upload
	Seed     Seed
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type JWT struct {
	Secret   string
	TTLHours int
}

type Upload struct {
	Dir string
}

// Seed holds the bootstrap manager account created on an empty database.
type Seed struct {
	ManagerUsername string
	ManagerPassword string
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("JWT_TTL_HOURS", 12)
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("SEED_MANAGER_USERNAME", "manager")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")

	config.JWT.Secret = viper.GetString("JWT_SECRET")
	config.JWT.TTLHours = viper.GetInt("JWT_TTL_HOURS")
	config.Upload.Dir = viper.GetString("UPLOAD_DIR")
	config.Seed.ManagerUsername = viper.GetString("SEED_MANAGER_USERNAME")
	config.Seed.ManagerPassword = viper.GetString("SEED_MANAGER_PASSWORD")

	log.Info().Str("port", config.Server.Port).Str("database", config.Database.Name).Msg("Config loaded")
	return &config, nil
}
