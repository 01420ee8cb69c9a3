package models

import "time"

// Config holds all configuration for the application
type Config struct {
	// Application
	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	AppEnv     string `mapstructure:"app_env"`
	AppHost    string `mapstructure:"app_host"`
	AppPort    string `mapstructure:"app_port"`

	// MongoDB
	MongoURI        string        `mapstructure:"mongo_uri"`
	MongoDatabase   string        `mapstructure:"mongo_database"`
	MongoCollection string        `mapstructure:"mongo_collection"`
	MongoTimeout    time.Duration `mapstructure:"mongo_timeout"`

	// JWT (staff endpoints)
	JWTSecret     string        `mapstructure:"jwt_secret"`
	JWTExpiresIn  time.Duration `mapstructure:"jwt_expires_in"`
	StaffUsername string        `mapstructure:"staff_username"`
	StaffPassword string        `mapstructure:"staff_password"`

	// Notifications (urgent leads)
	NotifyEnabled   bool   `mapstructure:"notify_enabled"`
	NotifyAWSRegion string `mapstructure:"notify_aws_region"`
	NotifyFrom      string `mapstructure:"notify_from"`
	NotifyTo        string `mapstructure:"notify_to"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// CORS
	CORSOrigins []string `mapstructure:"cors_origins"`

	// Base Path
	BasePath string `mapstructure:"basePath"`

	// Follow-up worker
	WorkerEnabled      bool   `mapstructure:"worker_enabled"`
	WorkerCronSchedule string `mapstructure:"worker_cron_schedule"`
}
