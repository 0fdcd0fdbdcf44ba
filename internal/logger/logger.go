// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger provides the shared zap logger for the CLI.
package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

func init() {
	logger = build(zapcore.WarnLevel)
}

func build(level zapcore.Level) *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	l, err := config.Build()
	if err != nil {
		log.Fatalf("initializing zap logger: %v", err)
	}
	return l
}

// Get returns the process-wide logger. The default level is warn so normal
// command output stays clean.
func Get() *zap.Logger {
	return logger
}

// SetVerbose lowers the level to debug. Called once from the root command
// when --verbose is set.
func SetVerbose() {
	logger = build(zapcore.DebugLevel)
}
