package inference

import (
	"github.com/stemd-dev/stemd/internal/domain"
)

// BuildCommand translates a request into the exact argv the inference
// tool accepts. The flag vocabulary is fixed: empty optional fields emit
// nothing and boolean flags are presence-only. Validation failures are
// configuration errors and nothing is spawned.
func BuildCommand(interpreter, script string, req domain.Request) ([]string, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cmd := []string{
		interpreter,
		script,
		"--model_type", req.ModelType,
		"--config_path", req.ConfigPath,
		"--start_check_point", req.StartCheckPoint,
	}

	if req.InputFile != "" {
		cmd = append(cmd, "--input_file", req.InputFile)
	}
	if req.InputFolder != "" {
		cmd = append(cmd, "--input_folder", req.InputFolder)
	}

	cmd = append(cmd, "--store_dir", req.StoreDir)

	if req.ExtractInstrumental {
		cmd = append(cmd, "--extract_instrumental")
	}
	if req.UseTTA {
		cmd = append(cmd, "--use_tta")
	}
	if req.ForceCPU {
		cmd = append(cmd, "--force_cpu")
	}

	if ids := domain.SplitDeviceIDs(req.DeviceIDs); len(ids) > 0 {
		cmd = append(cmd, "--device_ids")
		cmd = append(cmd, ids...)
	}

	return cmd, nil
}
