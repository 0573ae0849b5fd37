package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/smartasso/process-async-helper/internal/config"
	"github.com/smartasso/process-async-helper/internal/runner"
)

func newRunCmd() *cobra.Command {
	var (
		file    string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "run [task...]",
		Short: "Execute tasks from a manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			manifest, err := config.Load(file)
			if err != nil {
				return err
			}

			names := args
			if len(names) == 0 {
				names = manifest.TaskNames()
			}
			for _, name := range names {
				if _, ok := manifest.Tasks[name]; !ok {
					return fmt.Errorf("unknown task %s", name)
				}
			}

			r := runner.New()
			failed := 0
			for _, name := range names {
				res := r.Run(cmd.Context(), taskSpec(manifest.Tasks[name]))
				renderResult(cmd.OutOrStdout(), cmd.ErrOrStderr(), name, res, jsonOut)
				if res.Status != runner.StatusSuccess {
					failed++
				}
				if cmd.Context().Err() != nil {
					break
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d tasks failed", failed, len(names))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "tasks.yaml", "Path to task manifest")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Always emit JSON records, even on a terminal")
	return cmd
}

// taskSpec converts a loaded manifest task into a runner spec.
func taskSpec(task *config.TaskSpec) runner.Spec {
	return runner.Spec{
		Command:       task.Command,
		Dir:           task.ResolvedWorkdir,
		Env:           task.Env,
		CaptureStdout: task.CaptureStdout == nil || *task.CaptureStdout,
		CaptureStderr: task.CaptureStderr == nil || *task.CaptureStderr,
		Timeout:       task.Timeout.Duration,
	}
}
