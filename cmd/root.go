package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Lucioric2000/openshot-qt/internal/app"
	"github.com/Lucioric2000/openshot-qt/internal/errors"
	"github.com/Lucioric2000/openshot-qt/internal/launcher"
	"github.com/Lucioric2000/openshot-qt/internal/logging"
	"github.com/Lucioric2000/openshot-qt/internal/telemetry"
)

const shutdownTimeout = 5 * time.Second

// newLauncher is swapped out in tests.
var newLauncher = launcher.New

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "openshot [flags] [files...]",
		Short: "OpenShot video editor",
		Long: `openshot starts the OpenShot editor.

Arguments that are not openshot flags are passed to the toolkit, so
toolkit options such as -style=NAME and --no-alt-screen work as usual.
Prefer the -option=VALUE form for toolkit options that take a value.
Remaining arguments are project or media files to open.`,
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE:               runRoot,
	}

	var opts launcher.Options
	cmd.Flags().AddFlagSet(launcher.NewFlagSet(&opts))
	cmd.CompletionOptions.DisableDefaultCmd = true

	return cmd
}

// Execute runs the root command. The returned error carries the exit code.
func Execute() error {
	return newRootCmd().Execute()
}

func runRoot(cmd *cobra.Command, args []string) (err error) {
	errW := cmd.ErrOrStderr()

	defer func() {
		if r := recover(); r != nil {
			err = errors.ConstructionFailure(fmt.Errorf("panic: %v", r))
			logging.Error("launcher panicked", "panic", r)
			app.ShowErrors(errW, err, "")
		}
	}()
	defer shutdownTelemetry()

	code := newLauncher(cmd.OutOrStdout(), errW).Run(args)
	if code != errors.ExitSuccess {
		return errors.ExitCode(code)
	}
	return nil
}

func shutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := telemetry.Shutdown(ctx); err != nil {
		logging.Debug("telemetry shutdown failed", "error", err)
	}
}
