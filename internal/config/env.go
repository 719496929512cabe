package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	guarderrors "git.home.luguber.info/inful/ensure-pkg/internal/errors"
)

// envFiles are loaded in order from the docs root. godotenv never overrides a
// variable that is already set, so the process environment beats .env.local,
// which beats .env.
var envFiles = []string{".env.local", ".env"}

// loadEnvFile loads .env/.env.local from root without overriding existing variables.
func loadEnvFile(root string) error {
	for _, name := range envFiles {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err != nil {
			return guarderrors.ConfigInvalid(path, fmt.Errorf("failed to load env file: %w", err))
		}
		slog.Debug("Loaded environment variables", slog.String("path", path))
	}
	return nil
}

// ResolveRoot locates the docs root. ENSURE_PKG_ROOT wins when set; otherwise
// the root is the parent of the directory containing the running executable
// (for example docs/bin/ensure-pkg gives docs/), independent of the caller's
// working directory.
func ResolveRoot() (string, error) {
	return resolveRoot(os.Getenv, os.Executable)
}

func resolveRoot(getenv func(string) string, executable func() (string, error)) (string, error) {
	if v := getenv(EnvRoot); v != "" {
		abs, err := filepath.Abs(v)
		if err != nil {
			return "", guarderrors.RootUnresolved(err)
		}
		return abs, nil
	}

	exe, err := executable()
	if err != nil {
		return "", guarderrors.RootUnresolved(err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe)), nil
}
