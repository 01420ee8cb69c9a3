package utils

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/emanuelpaduret/alex-backend/models"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

// GetConfig read the configuration from environment variables or config files
func GetConfig() (*models.Config, error) {
	config, err := Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	return config, nil
}

// Load initializes and returns the application configuration using Viper
func Load() (*models.Config, error) {
	v := viper.New()

	// Set configuration file details
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../")

	// Set default values
	setDefaults(v)

	// Enable environment variable support
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		// Config file not found, continue with defaults and env vars
		fmt.Printf("Config file not found (%v), using defaults and environment variables\n", err)
	} else {
		fmt.Printf("Using config file: %s\n", v.ConfigFileUsed())
	}

	// Handle nested JSON structure from config.json
	if v.IsSet("app") {
		flattenNestedConfig(v)
	}

	var config models.Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Durations may arrive as strings from config.json or env
	for key, target := range map[string]*time.Duration{
		"jwt_expires_in": &config.JWTExpiresIn,
		"mongo_timeout":  &config.MongoTimeout,
	} {
		if s := v.GetString(key); s != "" {
			if d, err := time.ParseDuration(s); err == nil {
				*target = d
			}
		}
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Application defaults
	v.SetDefault("app_name", "Alex Backend")
	v.SetDefault("app_version", "1.0.0")
	v.SetDefault("app_env", "development")
	v.SetDefault("app_host", "0.0.0.0")
	v.SetDefault("app_port", "8080")

	// MongoDB defaults
	v.SetDefault("mongo_uri", "mongodb://localhost:27017")
	v.SetDefault("mongo_database", "alex")
	v.SetDefault("mongo_collection", "submissions")
	v.SetDefault("mongo_timeout", 10*time.Second)

	// JWT defaults
	v.SetDefault("jwt_secret", "change-this-secret-in-production")
	v.SetDefault("jwt_expires_in", 8*time.Hour)
	v.SetDefault("staff_username", "staff")
	v.SetDefault("staff_password", "")

	// Notification defaults
	v.SetDefault("notify_enabled", false)
	v.SetDefault("notify_aws_region", "us-east-1")
	v.SetDefault("notify_from", "")
	v.SetDefault("notify_to", "")

	// Logging defaults
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	// CORS defaults
	v.SetDefault("cors_origins", []string{"*"})

	// Base Path default
	v.SetDefault("basePath", "/api/v1")

	// Worker defaults
	v.SetDefault("worker_enabled", true)
	v.SetDefault("worker_cron_schedule", "0 0 * * * *")
}

// validate checks if all required configuration is provided
func validate(c *models.Config) error {
	if c.AppEnv == "production" && c.JWTSecret == "change-this-secret-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production environment")
	}

	if c.AppEnv == "production" && c.StaffPassword == "" {
		return fmt.Errorf("STAFF_PASSWORD must be set in production environment")
	}

	if c.NotifyEnabled && (c.NotifyFrom == "" || c.NotifyTo == "") {
		return fmt.Errorf("notify_from and notify_to must be set when notifications are enabled")
	}

	return nil
}

// flattenNestedConfig flattens the nested JSON structure to flat keys for easier mapping
func flattenNestedConfig(v *viper.Viper) {
	sections := map[string]string{
		"app.name":             "app_name",
		"app.version":          "app_version",
		"app.env":              "app_env",
		"app.host":             "app_host",
		"app.port":             "app_port",
		"mongo.uri":            "mongo_uri",
		"mongo.database":       "mongo_database",
		"mongo.collection":     "mongo_collection",
		"mongo.timeout":        "mongo_timeout",
		"jwt.secret":           "jwt_secret",
		"jwt.expires_in":       "jwt_expires_in",
		"staff.username":       "staff_username",
		"staff.password":       "staff_password",
		"notify.enabled":       "notify_enabled",
		"notify.aws_region":    "notify_aws_region",
		"notify.from":          "notify_from",
		"notify.to":            "notify_to",
		"logging.level":        "log_level",
		"logging.format":       "log_format",
		"worker.enabled":       "worker_enabled",
		"worker.cron_schedule": "worker_cron_schedule",
	}
	for nested, flat := range sections {
		if v.IsSet(nested) {
			v.Set(flat, v.Get(nested))
		}
	}
	if v.IsSet("cors.origins") {
		v.Set("cors_origins", v.GetStringSlice("cors.origins"))
	}
}

// PrintPrettyJSON takes any struct or map and prints it as pretty JSON
func PrintPrettyJSON(data interface{}) string {
	prettyJSON, err := json.MarshalIndent(data, "", "    ")
	if err != nil {
		fmt.Println("Failed to generate JSON:", err)
		return ""
	}
	return string(prettyJSON)
}

// GenerateUUID returns a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}
