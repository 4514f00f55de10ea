// Package api holds the wire types of the stemd JSON API, shared by the
// server and the CLI client.
package api

// SeparateRequest mirrors the inference tool's flag vocabulary. Empty
// fields fall back to the server's configured defaults; unknown fields
// are rejected.
type SeparateRequest struct {
	ModelType           string `json:"model_type,omitempty"`
	ConfigPath          string `json:"config_path,omitempty"`
	StartCheckPoint     string `json:"start_check_point,omitempty"`
	InputFile           string `json:"input_file,omitempty"`
	InputFolder         string `json:"input_folder,omitempty"`
	StoreDir            string `json:"store_dir,omitempty"`
	ExtractInstrumental bool   `json:"extract_instrumental,omitempty"`
	UseTTA              bool   `json:"use_tta,omitempty"`
	ForceCPU            bool   `json:"force_cpu,omitempty"`
	DeviceIDs           string `json:"device_ids,omitempty"`
}

// SeparateResponse is returned by POST /api/v1/separate. Output is the
// full text block: command line, captured tool output, exit status.
type SeparateResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	ExitCode int    `json:"exit_code"`
	Output   string `json:"output"`
}

// Defaults is returned by GET /api/v1/defaults so agents can discover
// the field vocabulary and the server's pre-filled values.
type Defaults struct {
	ModelType       string `json:"model_type"`
	ConfigPath      string `json:"config_path"`
	StartCheckPoint string `json:"start_check_point"`
	InputFolder     string `json:"input_folder"`
	StoreDir        string `json:"store_dir"`
	DeviceIDs       string `json:"device_ids"`
}
