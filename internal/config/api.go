package config

import (
	"fmt"
	"os"

	"github.com/JaimeStill/notewise/pkg/formatting"
	"github.com/JaimeStill/notewise/pkg/middleware"
	"github.com/JaimeStill/notewise/pkg/openapi"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "NOTEWISE_CORS_ENABLED",
	Origins:          "NOTEWISE_CORS_ORIGINS",
	AllowedMethods:   "NOTEWISE_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "NOTEWISE_CORS_ALLOWED_HEADERS",
	AllowCredentials: "NOTEWISE_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "NOTEWISE_CORS_MAX_AGE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "NOTEWISE_OPENAPI_TITLE",
	Description: "NOTEWISE_OPENAPI_DESCRIPTION",
	Servers:     "NOTEWISE_OPENAPI_SERVERS",
}

// APIConfig holds API routing, upload limits, CORS, and OpenAPI metadata.
type APIConfig struct {
	BasePath      string                `toml:"base_path"`
	MaxUploadSize string                `toml:"max_upload_size"`
	CORS          middleware.CORSConfig `toml:"cors"`
	OpenAPI       openapi.Config        `toml:"openapi"`
}

// MaxUploadSizeBytes returns MaxUploadSize in bytes.
func (c *APIConfig) MaxUploadSizeBytes() int64 {
	size, err := formatting.ParseBytes(c.MaxUploadSize)
	if err != nil {
		return 10 * 1024 * 1024
	}
	return size
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and OpenAPI configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.MaxUploadSize != "" {
		c.MaxUploadSize = overlay.MaxUploadSize
	}

	c.CORS.Merge(&overlay.CORS)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.MaxUploadSize == "" {
		c.MaxUploadSize = "10MB"
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("NOTEWISE_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("NOTEWISE_API_MAX_UPLOAD_SIZE"); v != "" {
		c.MaxUploadSize = v
	}
}

func (c *APIConfig) validate() error {
	if _, err := formatting.ParseBytes(c.MaxUploadSize); err != nil {
		return fmt.Errorf("invalid max_upload_size: %w", err)
	}
	return nil
}
