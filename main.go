package main

import (
	"os"

	"github.com/Lucioric2000/openshot-qt/cmd"
	"github.com/Lucioric2000/openshot-qt/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
