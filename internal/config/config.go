package config

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all service settings.
type Config struct {
	// Address is the listen address of the HTTP server.
	Address string
	// ModelPath points at the ONNX weights artifact, relative to the
	// working directory unless absolute.
	ModelPath string
	// StaticDir holds the upload UI and its assets.
	StaticDir string
	// CORSOrigins is a comma-separated allow list; "*" keeps the fully
	// open posture.
	CORSOrigins string
	// MaxUploadBytes caps the multipart request body.
	MaxUploadBytes int
}

// Load reads configuration from an optional config file and environment
// variables, falling back to defaults.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("Address", ":8000")
	v.SetDefault("ModelPath", "weights/model.onnx")
	v.SetDefault("StaticDir", "static")
	v.SetDefault("CORSOrigins", "*")
	v.SetDefault("MaxUploadBytes", 10<<20)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envMappings := map[string]string{
		"Address":        "ADDRESS",
		"ModelPath":      "MODEL_PATH",
		"StaticDir":      "STATIC_DIR",
		"CORSOrigins":    "CORS_ORIGINS",
		"MaxUploadBytes": "MAX_UPLOAD_BYTES",
	}
	for key, env := range envMappings {
		if err := v.BindEnv(key, env); err != nil {
			log.Warn().Err(err).Msgf("Failed to bind environment variable %s for %s", env, key)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Msgf("Using config file: %s", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &cfg, nil
}
