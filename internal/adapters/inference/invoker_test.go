package inference_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stemd-dev/stemd/internal/adapters/inference"
	"github.com/stemd-dev/stemd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTool writes a shell script standing in for inference.py and
// returns its path. The invoker runs it via sh, so the interpreter slot
// is exercised the same way python would be.
func stubTool(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))
	return path
}

func TestInvoke_EchoesArguments(t *testing.T) {
	tool := stubTool(t, `echo "$@"`)
	inv := inference.New("sh", tool, 0)

	res, err := inv.Invoke(context.Background(), referenceRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusSuccess, res.Status)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t,
		"--model_type bs_roformer --config_path ckpt/bs_rofomer/BS-Rofo-SW-Fixed.yaml --start_check_point ckpt/bs_rofomer/BS-Rofo-SW-Fixed.ckpt --input_folder audio/ --store_dir separated/\n",
		res.Output)
	assert.Empty(t, res.Stderr)
}

func TestInvoke_ToolFailureKeepsLog(t *testing.T) {
	tool := stubTool(t, `echo "loading model"
echo "ERROR" >&2
exit 1`)
	inv := inference.New("sh", tool, 0)

	res, err := inv.Invoke(context.Background(), referenceRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusToolFailure, res.Status)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Output, "ERROR")
	assert.Contains(t, res.Output, "loading model")
	assert.Contains(t, res.Text(), "ERROR")
	assert.Contains(t, res.Text(), "exit status: 1")
}

func TestInvoke_SuccessWithWarnings(t *testing.T) {
	tool := stubTool(t, `echo "done"
echo "deprecation warning" >&2`)
	inv := inference.New("sh", tool, 0)

	res, err := inv.Invoke(context.Background(), referenceRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusWarnings, res.Status)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stderr, "deprecation warning")
	assert.Contains(t, res.Output, "deprecation warning")
}

func TestInvoke_LaunchFailure(t *testing.T) {
	inv := inference.New(filepath.Join(t.TempDir(), "no-such-python"), "inference.py", 0)

	res, err := inv.Invoke(context.Background(), referenceRequest())
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "launch failure")
}

func TestInvoke_ConfigurationErrorBeforeSpawn(t *testing.T) {
	tool := stubTool(t, `echo "should never run"`)
	inv := inference.New("sh", tool, 0)

	req := referenceRequest()
	req.InputFile = "clash"
	req.InputFolder = "clash"

	res, err := inv.Invoke(context.Background(), req)
	require.Error(t, err)
	assert.Nil(t, res)

	var cfgErr *domain.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestInvoke_Timeout(t *testing.T) {
	tool := stubTool(t, `sleep 30`)
	inv := inference.New("sh", tool, 100*time.Millisecond)

	res, err := inv.Invoke(context.Background(), referenceRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.StatusToolFailure, res.Status)
	assert.Contains(t, res.Output, "timeout")
}

func TestInvoke_SequentialRunsAreIndependent(t *testing.T) {
	tool := stubTool(t, `echo "$@"`)
	inv := inference.New("sh", tool, 0)

	first := referenceRequest()
	first.StoreDir = "separated-one/"
	second := referenceRequest()
	second.StoreDir = "separated-two/"

	resOne, err := inv.Invoke(context.Background(), first)
	require.NoError(t, err)
	resTwo, err := inv.Invoke(context.Background(), second)
	require.NoError(t, err)

	assert.Contains(t, resOne.Text(), "separated-one/")
	assert.NotContains(t, resOne.Text(), "separated-two/")
	assert.Contains(t, resTwo.Text(), "separated-two/")
	assert.NotContains(t, resTwo.Text(), "separated-one/")
}
