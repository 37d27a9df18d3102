package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/aleister1102/dingrobot/internal/common"
	"gopkg.in/yaml.v3"
)

const (
	// Robot Defaults
	DefaultRequestTimeoutSecs = 20

	// Log Defaults
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "console"
	DefaultLogFile       = ""
	DefaultMaxLogSizeMB  = 100
	DefaultMaxLogBackups = 3
)

type GlobalConfig struct {
	LogConfig   LogConfig   `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	RobotConfig RobotConfig `json:"robot_config,omitempty" yaml:"robot_config,omitempty"`
}

func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:   NewDefaultLogConfig(),
		RobotConfig: NewDefaultRobotConfig(),
	}
}

// RobotConfig holds the credentials for one webhook robot channel.
// DefaultWebhookURL may be left empty, in which case the standard DingTalk
// robot endpoint is used. SecToken is empty for unsigned channels.
type RobotConfig struct {
	AccessToken        string `json:"access_token,omitempty" yaml:"access_token,omitempty"`
	DefaultWebhookURL  string `json:"default_webhook_url,omitempty" yaml:"default_webhook_url,omitempty" validate:"omitempty,url"`
	DirectURL          string `json:"direct_url,omitempty" yaml:"direct_url,omitempty" validate:"omitempty,url"`
	InsecureSkipVerify bool   `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	RequestTimeoutSecs int    `json:"request_timeout_secs,omitempty" yaml:"request_timeout_secs,omitempty" validate:"omitempty,min=1"`
	SecToken           string `json:"sec_token,omitempty" yaml:"sec_token,omitempty"`
}

func NewDefaultRobotConfig() RobotConfig {
	return RobotConfig{
		AccessToken:        "",
		DefaultWebhookURL:  "",
		DirectURL:          "",
		InsecureSkipVerify: false,
		RequestTimeoutSecs: DefaultRequestTimeoutSecs,
		SecToken:           "",
	}
}

type LogConfig struct {
	LogFile       string `json:"log_file,omitempty" yaml:"log_file,omitempty"`
	LogFormat     string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,logformat"`
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,loglevel"`
	MaxLogBackups int    `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty"`
	MaxLogSizeMB  int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty"`
}

func NewDefaultLogConfig() LogConfig {
	return LogConfig{
		LogFile:       DefaultLogFile,
		LogFormat:     DefaultLogFormat,
		LogLevel:      DefaultLogLevel,
		MaxLogBackups: DefaultMaxLogBackups,
		MaxLogSizeMB:  DefaultMaxLogSizeMB,
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath, supports both JSON
// and YAML formats. YAML is preferred if the file extension is .yaml or .yml.
// A leading "~/" in the provided path is expanded to the user's home directory.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath, err := GetConfigPath(providedPath)
	if err != nil {
		return nil, common.WrapError(err, "failed to resolve config path")
	}
	if filePath == "" {
		return cfg, nil
	}

	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, common.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		return parseYAMLConfig(data, filePath, cfg)
	}
	return parseJSONConfig(data, filePath, cfg)
}

// isYAMLFile checks if the file extension indicates a YAML file
func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}

// parseYAMLConfig parses YAML configuration
func parseYAMLConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
	}
	return nil
}

// parseJSONConfig parses JSON configuration
func parseJSONConfig(data []byte, filePath string, cfg *GlobalConfig) error {
	if err := json.Unmarshal(data, cfg); err != nil {
		return common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

// LoadRobotConfig reads a bare robot credentials file, the format the
// original robot clients exchange:
//
//	{
//	    "default_webhook_url": "",       // optional
//	    "access_token": "<access token>",
//	    "sec_token": "<sec token>"       // optional
//	}
//
// Both JSON and YAML files are accepted; a leading "~/" is expanded.
func LoadRobotConfig(path string) (*RobotConfig, error) {
	filePath, err := ExpandHomePath(path)
	if err != nil {
		return nil, common.WrapError(err, "failed to expand config path")
	}

	data, err := readConfigFile(filePath)
	if err != nil {
		return nil, common.WrapError(err, "failed to load robot config")
	}

	cfg := NewDefaultRobotConfig()
	ext := filepath.Ext(filePath)
	if isYAMLFile(ext) {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, common.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
	} else {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, common.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
		}
	}

	return &cfg, nil
}
