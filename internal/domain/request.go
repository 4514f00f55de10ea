package domain

import (
	"fmt"
	"strings"
)

// Request describes one invocation of the separation tool. Every path
// field is an opaque string handed straight to the tool; the tool is the
// only layer that validates them.
type Request struct {
	ModelType           string `schema:"model_type"`
	ConfigPath          string `schema:"config_path"`
	StartCheckPoint     string `schema:"start_check_point"`
	InputFile           string `schema:"input_file"`
	InputFolder         string `schema:"input_folder"`
	StoreDir            string `schema:"store_dir"`
	ExtractInstrumental bool   `schema:"extract_instrumental"`
	UseTTA              bool   `schema:"use_tta"`
	ForceCPU            bool   `schema:"force_cpu"`
	DeviceIDs           string `schema:"device_ids"`
}

// ConfigError rejects a request before the tool is spawned.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

func Configf(format string, args ...any) error {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// Validate runs the pre-spawn checks. Anything it rejects is a
// configuration error; anything it passes is the tool's problem.
func (r Request) Validate() error {
	if r.InputFile == "" && r.InputFolder == "" {
		return Configf("one of input_file or input_folder is required")
	}
	if r.InputFile != "" && r.InputFolder != "" {
		return Configf("input_file and input_folder are mutually exclusive")
	}

	input := r.InputFile
	if input == "" {
		input = r.InputFolder
	}
	if input == r.StoreDir {
		return Configf("input and store_dir must be different to avoid overwriting files")
	}

	required := []struct {
		name, value string
	}{
		{"model_type", r.ModelType},
		{"config_path", r.ConfigPath},
		{"start_check_point", r.StartCheckPoint},
		{"store_dir", r.StoreDir},
	}
	for _, f := range required {
		if f.value == "" {
			return Configf("%s is required", f.name)
		}
	}
	return nil
}

// SplitDeviceIDs turns the free-form device id string ("0", "0 1",
// "0,1") into ordered tokens.
func SplitDeviceIDs(value string) []string {
	return strings.Fields(strings.ReplaceAll(value, ",", " "))
}
