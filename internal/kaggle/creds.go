package kaggle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Credential sources, in the order the chain consults them.
const (
	SourceEnv        = "environment"
	SourceDotEnv     = ".env file"
	SourceConfigFile = "~/.kaggle/kaggle.json"
	SourceMissing    = "not found"
)

// Credentials is the outcome of the discovery chain. Username and Key drive
// the CLI; APIToken is the newer unified token some accounts carry instead.
type Credentials struct {
	Username string `json:"username"`
	Key      string `json:"key,omitempty"`
	APIToken string `json:"api_token,omitempty"`

	// Per-field provenance for the creds report.
	UsernameSource string `json:"username_source"`
	KeySource      string `json:"key_source"`
	TokenSource    string `json:"token_source"`
}

// Complete reports whether the CLI can authenticate with what was found.
// Either the unified token or the username+key pair is enough.
func (c Credentials) Complete() bool {
	if c.APIToken != "" {
		return true
	}
	return c.Username != "" && c.Key != ""
}

// ResolveCredentials walks the discovery chain: process environment, then a
// .env file in the working directory, then the kaggle.json config file.
// KAGGLE_TOKEN is accepted as a legacy alias for KAGGLE_KEY.
func ResolveCredentials(logger *zap.Logger) Credentials {
	if logger == nil {
		logger = zap.NewNop()
	}

	creds := Credentials{
		UsernameSource: SourceMissing,
		KeySource:      SourceMissing,
		TokenSource:    SourceMissing,
	}

	fromEnv := func(key string) (string, string) {
		if v := os.Getenv(key); v != "" {
			return v, SourceEnv
		}
		return "", SourceMissing
	}

	creds.Username, creds.UsernameSource = fromEnv("KAGGLE_USERNAME")
	creds.Key, creds.KeySource = fromEnv("KAGGLE_KEY")
	creds.APIToken, creds.TokenSource = fromEnv("KAGGLE_API_TOKEN")

	// .env fills only the gaps; real environment wins.
	if env, err := godotenv.Read(".env"); err == nil {
		fill := func(dst *string, src *string, key string) {
			if *dst == "" && env[key] != "" {
				*dst = env[key]
				*src = SourceDotEnv
			}
		}
		fill(&creds.Username, &creds.UsernameSource, "KAGGLE_USERNAME")
		fill(&creds.Key, &creds.KeySource, "KAGGLE_KEY")
		fill(&creds.APIToken, &creds.TokenSource, "KAGGLE_API_TOKEN")
		if creds.Key == "" && env["KAGGLE_TOKEN"] != "" {
			creds.Key = env["KAGGLE_TOKEN"]
			creds.KeySource = SourceDotEnv
		}
	}

	// Legacy alias from the real environment.
	if creds.Key == "" {
		if v := os.Getenv("KAGGLE_TOKEN"); v != "" {
			creds.Key = v
			creds.KeySource = SourceEnv
		}
	}

	// Finally the CLI's own config file.
	if creds.Username == "" || creds.Key == "" {
		if username, key, ok := readConfigFile(logger); ok {
			if creds.Username == "" && username != "" {
				creds.Username = username
				creds.UsernameSource = SourceConfigFile
			}
			if creds.Key == "" && key != "" {
				creds.Key = key
				creds.KeySource = SourceConfigFile
			}
		}
	}

	logger.Debug("credentials resolved",
		zap.String("username", creds.Username),
		zap.String("username_source", creds.UsernameSource),
		zap.String("key_source", creds.KeySource),
		zap.String("token_source", creds.TokenSource),
		zap.Bool("complete", creds.Complete()))
	return creds
}

// configFilePath returns the CLI's config file location, honoring
// KAGGLE_CONFIG_DIR the way the CLI itself does.
func configFilePath() (string, error) {
	if dir := os.Getenv("KAGGLE_CONFIG_DIR"); dir != "" {
		return filepath.Join(dir, "kaggle.json"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".kaggle", "kaggle.json"), nil
}

func readConfigFile(logger *zap.Logger) (username, key string, ok bool) {
	path, err := configFilePath()
	if err != nil {
		return "", "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", false
	}
	var parsed struct {
		Username string `json:"username"`
		Key      string `json:"key"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		logger.Warn("malformed kaggle.json, ignoring", zap.String("path", path), zap.Error(err))
		return "", "", false
	}
	if info, err := os.Stat(path); err == nil {
		if info.Mode().Perm()&0o077 != 0 {
			logger.Warn("kaggle.json is readable by other users, consider chmod 600",
				zap.String("path", path))
		}
	}
	return parsed.Username, parsed.Key, true
}

// EnsureConfigFile writes ~/.kaggle/kaggle.json from the resolved pair when
// the file is missing, so the CLI can authenticate without env plumbing.
func EnsureConfigFile(creds Credentials, logger *zap.Logger) error {
	if creds.Username == "" || creds.Key == "" {
		return fmt.Errorf("cannot write kaggle.json without username and key")
	}
	path, err := configFilePath()
	if err != nil {
		return fmt.Errorf("locate kaggle config: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create kaggle config dir: %w", err)
	}
	data, err := json.Marshal(map[string]string{
		"username": creds.Username,
		"key":      creds.Key,
	})
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write kaggle.json: %w", err)
	}
	if logger != nil {
		logger.Info("wrote kaggle config file", zap.String("path", path))
	}
	return nil
}

// Mask hides a secret, keeping only the last four characters.
func Mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
