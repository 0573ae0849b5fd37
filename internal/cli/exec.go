package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smartasso/process-async-helper/internal/runner"
)

// Exit codes mirroring timeout(1): 124 when the deadline fires, 127 when the
// command could not be launched at all.
const (
	exitTimeout    = 124
	exitLaunchFail = 127
)

func newExecCmd() *cobra.Command {
	var (
		timeout  time.Duration
		workdir  string
		envPairs []string
		noStdout bool
		noStderr bool
		jsonOut  bool
	)
	cmd := &cobra.Command{
		Use:   "exec [flags] -- command [args...]",
		Short: "Execute a single command and report its result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := parseEnvPairs(envPairs)
			if err != nil {
				return err
			}

			res := runner.New().Run(cmd.Context(), runner.Spec{
				Command:       args,
				Dir:           workdir,
				Env:           env,
				CaptureStdout: !noStdout,
				CaptureStderr: !noStderr,
				Timeout:       timeout,
			})
			renderResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), "", res, jsonOut)
			return exitFromResult(res)
		},
	}
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", 0, "Abort the command after this duration (0 waits indefinitely)")
	cmd.Flags().StringVarP(&workdir, "workdir", "w", "", "Working directory for the command")
	cmd.Flags().StringArrayVarP(&envPairs, "env", "e", nil, "Additional KEY=VALUE environment entries")
	cmd.Flags().BoolVar(&noStdout, "no-stdout", false, "Do not capture standard output")
	cmd.Flags().BoolVar(&noStderr, "no-stderr", false, "Do not capture standard error")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Always emit a JSON record, even on a terminal")
	return cmd
}

func parseEnvPairs(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid env entry %q, expected KEY=VALUE", pair)
		}
		env[key] = value
	}
	return env, nil
}

func exitFromResult(res runner.Result) error {
	switch {
	case res.Status == runner.StatusTimeout:
		return &exitCodeError{code: exitTimeout}
	case res.ExitCode == nil:
		return &exitCodeError{code: exitLaunchFail}
	case *res.ExitCode > 0:
		return &exitCodeError{code: *res.ExitCode}
	case *res.ExitCode < 0:
		return &exitCodeError{code: 1}
	}
	return nil
}
