package config

type Config interface {
	EnvConfig
	AuthPolicyConfig
}

type EnvConfig interface {
	GetAPIBaseURL() string
	GetAppName() string
	GetStateDir() string
	GetLogLevel() string
	GetEnv() string
}

type AuthPolicyConfig interface {
	GetUnauthorizedPolicy() UnauthorizedPolicy
}

type mainConfig struct {
	EnvVars
	AuthPolicy
}

func New() Config {
	return mainConfig{}
}
