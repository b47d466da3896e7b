package main

import (
	"context"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/alnah/go-booklet/internal/config"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer

	// Serve runs the service until ctx is done.
	Serve func(ctx context.Context, cfg *config.Config, logger *zap.Logger) error
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Serve:  serve,
	}
}
