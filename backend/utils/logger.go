package utils

import (
	"log"
	"os"
)

// LoggerConfig controls the output stream and format of the app logger.
type LoggerConfig struct {
	Output *os.File
	Prefix string
}

// InitLogger builds the process-wide logger.
func InitLogger(config ...LoggerConfig) *log.Logger {
	var cfg LoggerConfig
	if len(config) > 0 {
		cfg = config[0]
	}

	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "[Unichance API] "
	}

	return log.New(cfg.Output, cfg.Prefix, log.LstdFlags|log.LUTC)
}
