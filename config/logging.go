package config

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// ConfigureLogging applies the log level and picks the JSON formatter in production
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetOutput(os.Stdout)

	if c.Environment == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}
