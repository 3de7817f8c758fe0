package bundle

import (
	"context"
	"errors"
	"fmt"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/sshgui-packager/internal/logger"
)

// ErrAppRunning indicates the application is running while the pipeline is
// about to replace its bundles or snapshot them into an image.
var ErrAppRunning = errors.New("application is running, stop it or pass --force")

// EnsureNotRunning fails when any of the named executables currently has a
// live process. Rewriting a bundle under a running application leaves the OS
// holding deleted files, so destructive pipeline steps call this first.
func EnsureNotRunning(ctx context.Context, names ...string) error {
	processes, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	wanted := make(map[string]struct{}, len(names))
	for _, name := range names {
		wanted[name] = struct{}{}
	}

	for _, process := range processes {
		if _, ok := wanted[process.Executable()]; ok {
			logger.WarnKV(ctx, "Found a live process of the packaged application",
				"executable", process.Executable(), "pid", process.Pid())

			return fmt.Errorf("%s: %w", process.Executable(), ErrAppRunning)
		}
	}

	return nil
}
