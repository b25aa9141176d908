package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nibzard/choretracker-go/internal/api"
	"github.com/nibzard/choretracker-go/internal/config"
)

// requestCommand runs a declarative request spec read from a file, or
// stdin for "-", and prints the decoded response.
func requestCommand(ctx context.Context, cfg *config.Config, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("choretracker request", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("request requires exactly one spec file (or - for stdin)")
	}
	path := fs.Arg(0)

	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading request spec: %w", err)
	}

	spec, err := api.DecodeSpec(data, api.TaskReceivers())
	if err != nil {
		return err
	}

	a, err := newApp(cfg, stdout, stderr)
	if err != nil {
		return err
	}
	out, err := api.Fetch(ctx, a.client, spec)
	if err != nil {
		return err
	}
	if spec.Receive == nil {
		fmt.Fprintf(stdout, "%s %s: ok\n", spec.Method, a.client.BaseURL()+strings.Join(spec.Path, "/"))
		return nil
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
