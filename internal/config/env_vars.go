package config

import (
	"os"
	"path/filepath"
)

const (
	apiBaseURLVar = "COLLEGEOPS_API_URL"
	appNameVar    = "COLLEGEOPS_APP_NAME"
	stateDirVar   = "COLLEGEOPS_STATE_DIR"
	logLevelVar   = "COLLEGEOPS_LOG_LEVEL"

	// defaultAPIBaseURL is the hosted CollegeOps backend.
	defaultAPIBaseURL = "https://backend23-wuq7.onrender.com/api"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

// GetAPIBaseURL returns the base URL of the remote CollegeOps API.
// All request paths (e.g. /auth/login, /notes) are resolved against it.
func (EnvVars) GetAPIBaseURL() string {
	return GetEnv(apiBaseURLVar, defaultAPIBaseURL)
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "CollegeOps")
}

// GetStateDir returns the directory holding the durable session entries.
func (EnvVars) GetStateDir() string {
	if dir := os.Getenv(stateDirVar); dir != "" {
		return dir
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ".collegeops"
	}
	return filepath.Join(configDir, "collegeops")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelVar, "info")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
