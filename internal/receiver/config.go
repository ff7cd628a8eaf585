package receiver

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendFS = "fs"
	BackendS3 = "s3"
)

// Config holds runtime settings for the receiver.
//
// Fields:
//   - Addr: listen address, e.g. ":8080".
//   - APIKey / APISecret: the only credentials accepted on /publish.
//   - Backend: "fs" (StorageDir) or "s3".
//   - MaxUploadBytes: upper bound for one request body.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	Addr           string
	APIKey         string
	APISecret      string
	Backend        string
	StorageDir     string
	MaxUploadBytes int64
	LogLevel       string
	S3RootUser     string
	S3RootPassword string
	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
}

// LoadDefaults populates Config with development defaults.
// NOTE: the credentials are insecure and must be overridden outside a laptop.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.APIKey = "dev"
	c.APISecret = "dev"
	c.Backend = BackendFS
	c.StorageDir = "received"
	c.MaxUploadBytes = 32 << 20
	c.LogLevel = "info"
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "documents"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig reads a .env file (if present) and RECEIVER_* environment
// variables over the defaults.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	c := &Config{}
	c.LoadDefaults()

	c.Addr = getEnv("RECEIVER_ADDR", c.Addr)
	c.APIKey = getEnv("RECEIVER_API_KEY", c.APIKey)
	c.APISecret = getEnv("RECEIVER_API_SECRET", c.APISecret)
	c.Backend = getEnv("RECEIVER_BACKEND", c.Backend)
	c.StorageDir = getEnv("RECEIVER_STORAGE_DIR", c.StorageDir)
	c.LogLevel = getEnv("RECEIVER_LOG_LEVEL", c.LogLevel)
	c.S3RootUser = getEnv("RECEIVER_S3_ROOT_USER", c.S3RootUser)
	c.S3RootPassword = getEnv("RECEIVER_S3_ROOT_PASSWORD", c.S3RootPassword)
	c.S3Bucket = getEnv("RECEIVER_S3_BUCKET", c.S3Bucket)
	c.S3Region = getEnv("RECEIVER_S3_REGION", c.S3Region)
	c.S3BaseEndpoint = getEnv("RECEIVER_S3_BASE_ENDPOINT", c.S3BaseEndpoint)

	if v := os.Getenv("RECEIVER_MAX_UPLOAD_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("RECEIVER_MAX_UPLOAD_BYTES: %w", err)
		}
		c.MaxUploadBytes = n
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFS:
		if c.StorageDir == "" {
			return fmt.Errorf("fs backend needs a storage directory")
		}
	case BackendS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3 backend needs a bucket")
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.APIKey == "" {
		return fmt.Errorf("api key is empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload bytes must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
