package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string
	Environment    string   // ENV: production, development, etc.
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	AllowedHosts   []string // production Host check; empty disables it
	JWTSecret      string
	AdminEmails    []string // ADMIN_EMAILS: accounts allowed to use the database viewer
	Currency       string // ISO 4217 code used in activity descriptions and summaries

	StoreDriver  string // file, postgres, mongo, redis, memory
	StorePath    string // file driver only
	StoreName    string // document name for postgres, mongo and redis
	StoreTimeout time.Duration

	PostgresURI string
	MongoURI    string
	RedisURI    string // optional for non-redis drivers; enables the Redis rate limiter and activity pub/sub
	RabbitMQURL string // optional; activity events are published when set

	BackupDir           string
	BackupCron          string // empty disables scheduled backups
	CloudinaryName      string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string
}

func Load() *Config {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("ENV", "development")
	v.SetDefault("PORT", "3000")
	v.SetDefault("JWT_SECRET", "your-secret-key-change-in-production")
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("STORE_DRIVER", "file")
	v.SetDefault("STORE_PATH", "data/database.json")
	v.SetDefault("STORE_NAME", "default")
	v.SetDefault("STORE_TIMEOUT", "5s")
	v.SetDefault("POSTGRES_URI", "postgres://localhost:5432/goalledger?sslmode=disable")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017/goalledger")
	v.SetDefault("FRONTEND_URL", "http://localhost:3000")
	v.SetDefault("BACKUP_DIR", "data/backups")
	v.SetDefault("CLOUDINARY_FOLDER", "goalledger/backups")

	// CORS: allow multiple origins
	allowedOrigins := splitList(v.GetString("ALLOWED_ORIGINS"))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{v.GetString("FRONTEND_URL"), v.GetString("FRONTEND_URL_2")} {
			u = strings.TrimSpace(u)
			if u != "" && !containsOrigin(allowedOrigins, u) {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}

	timeout := v.GetDuration("STORE_TIMEOUT")
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	mongoURI := v.GetString("MONGODB_URI")
	if mongoURI == "" {
		mongoURI = v.GetString("MONGO_URI")
	}

	return &Config{
		Port:                v.GetString("PORT"),
		Environment:         strings.ToLower(strings.TrimSpace(v.GetString("ENV"))),
		AllowedOrigins:      allowedOrigins,
		AllowedHosts:        splitList(v.GetString("ALLOWED_HOSTS")),
		JWTSecret:           v.GetString("JWT_SECRET"),
		AdminEmails:         splitList(v.GetString("ADMIN_EMAILS")),
		Currency:            strings.ToUpper(strings.TrimSpace(v.GetString("CURRENCY"))),
		StoreDriver:         strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
		StorePath:           v.GetString("STORE_PATH"),
		StoreName:           v.GetString("STORE_NAME"),
		StoreTimeout:        timeout,
		PostgresURI:         v.GetString("POSTGRES_URI"),
		MongoURI:            mongoURI,
		RedisURI:            v.GetString("REDIS_URI"),
		RabbitMQURL:         v.GetString("RABBITMQ_URL"),
		BackupDir:           v.GetString("BACKUP_DIR"),
		BackupCron:          strings.TrimSpace(v.GetString("BACKUP_CRON")),
		CloudinaryName:      v.GetString("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    v.GetString("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: v.GetString("CLOUDINARY_API_SECRET"),
		CloudinaryFolder:    v.GetString("CLOUDINARY_FOLDER"),
	}
}

// splitList splits a comma-separated setting, dropping empty entries.
func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func containsOrigin(list []string, o string) bool {
	o = strings.TrimSpace(strings.ToLower(o))
	for _, v := range list {
		if strings.TrimSpace(strings.ToLower(v)) == o {
			return true
		}
	}
	return false
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// CloudinaryEnabled reports whether all Cloudinary credentials are present.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}
