package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/stemd-dev/stemd/internal/domain"
)

type ServerConfig struct {
	Listen string `toml:"listen" env:"STEMD_LISTEN"`
}

type ToolConfig struct {
	Interpreter    string `toml:"interpreter" env:"STEMD_TOOL_INTERPRETER"`
	Script         string `toml:"script" env:"STEMD_TOOL_SCRIPT"`
	TimeoutSeconds int    `toml:"timeout_seconds" env:"STEMD_TOOL_TIMEOUT_SECONDS"`
}

// Defaults pre-populates the form and backfills agent requests, matching
// the reference split script.
type Defaults struct {
	ModelType       string `toml:"model_type" env:"STEMD_DEFAULT_MODEL_TYPE"`
	ConfigPath      string `toml:"config_path" env:"STEMD_DEFAULT_CONFIG_PATH"`
	StartCheckPoint string `toml:"start_check_point" env:"STEMD_DEFAULT_START_CHECK_POINT"`
	InputFolder     string `toml:"input_folder" env:"STEMD_DEFAULT_INPUT_FOLDER"`
	StoreDir        string `toml:"store_dir" env:"STEMD_DEFAULT_STORE_DIR"`
	DeviceIDs       string `toml:"device_ids" env:"STEMD_DEFAULT_DEVICE_IDS"`
}

type Config struct {
	Server   ServerConfig `toml:"server"`
	Tool     ToolConfig   `toml:"tool"`
	Defaults Defaults     `toml:"defaults"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Listen: ":7867",
		},
		Tool: ToolConfig{
			Interpreter: "python3",
			Script:      "inference.py",
		},
		Defaults: Defaults{
			ModelType:       "bs_roformer",
			ConfigPath:      "ckpt/bs_rofomer/BS-Rofo-SW-Fixed.yaml",
			StartCheckPoint: "ckpt/bs_rofomer/BS-Rofo-SW-Fixed.ckpt",
			InputFolder:     "audio/",
			StoreDir:        "separated/",
			DeviceIDs:       "0",
		},
	}
}

// Load reads the TOML file at path, if present, then applies environment
// overrides on top. A missing file leaves the built-in defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) ToolTimeout() time.Duration {
	return time.Duration(c.Tool.TimeoutSeconds) * time.Second
}

// Apply backfills empty request fields from the configured defaults.
// Booleans pass through untouched: absence means false. The folder
// default only applies when neither input field is set, so an explicit
// input_file does not pick up a conflicting folder.
func (d Defaults) Apply(req domain.Request) domain.Request {
	if req.ModelType == "" {
		req.ModelType = d.ModelType
	}
	if req.ConfigPath == "" {
		req.ConfigPath = d.ConfigPath
	}
	if req.StartCheckPoint == "" {
		req.StartCheckPoint = d.StartCheckPoint
	}
	if req.InputFile == "" && req.InputFolder == "" {
		req.InputFolder = d.InputFolder
	}
	if req.StoreDir == "" {
		req.StoreDir = d.StoreDir
	}
	if req.DeviceIDs == "" {
		req.DeviceIDs = d.DeviceIDs
	}
	return req
}
