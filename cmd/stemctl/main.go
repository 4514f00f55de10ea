package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stemd-dev/stemd/internal/client"
	"github.com/stemd-dev/stemd/pkg/api"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	addr := os.Getenv("STEMD_ADDR")
	if addr == "" {
		addr = "http://localhost:7867"
	}
	c := client.New(addr)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		cancel()
	}()

	switch os.Args[1] {
	case "separate":
		cmdSeparate(ctx, c, os.Args[2:])
	case "defaults":
		cmdDefaults(ctx, c)
	case "health":
		cmdHealth(ctx, c)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: stemctl <command> [args]\n\nCommands:\n  separate [flags]  Run the separation tool and print its output\n  defaults          Show the server's default field values\n  health            Check that the server is up\n\nThe server address comes from STEMD_ADDR (default http://localhost:7867).\n")
}

func cmdSeparate(ctx context.Context, c *client.Client, args []string) {
	fs := flag.NewFlagSet("separate", flag.ExitOnError)
	req := api.SeparateRequest{}
	fs.StringVar(&req.ModelType, "model-type", "", "model type (server default when empty)")
	fs.StringVar(&req.ConfigPath, "config-path", "", "model config file path")
	fs.StringVar(&req.StartCheckPoint, "start-check-point", "", "model checkpoint path")
	fs.StringVar(&req.InputFile, "input-file", "", "input audio file")
	fs.StringVar(&req.InputFolder, "input-folder", "", "input audio folder")
	fs.StringVar(&req.StoreDir, "store-dir", "", "output directory for separated tracks")
	fs.BoolVar(&req.ExtractInstrumental, "extract-instrumental", false, "also extract the instrumental track")
	fs.BoolVar(&req.UseTTA, "use-tta", false, "use test-time augmentation (slower)")
	fs.BoolVar(&req.ForceCPU, "force-cpu", false, "force CPU execution")
	fs.StringVar(&req.DeviceIDs, "device-ids", "", "device ids, e.g. \"0\" or \"0 1\"")
	fs.Parse(args)

	resp, err := c.Separate(ctx, req)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(resp.Output)
	if resp.Status == "tool_failure" {
		os.Exit(1)
	}
}

func cmdDefaults(ctx context.Context, c *client.Client) {
	defaults, err := c.Defaults(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("model_type:        %s\n", defaults.ModelType)
	fmt.Printf("config_path:       %s\n", defaults.ConfigPath)
	fmt.Printf("start_check_point: %s\n", defaults.StartCheckPoint)
	fmt.Printf("input_folder:      %s\n", defaults.InputFolder)
	fmt.Printf("store_dir:         %s\n", defaults.StoreDir)
	fmt.Printf("device_ids:        %s\n", defaults.DeviceIDs)
}

func cmdHealth(ctx context.Context, c *client.Client) {
	if err := c.Health(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("ok")
}
