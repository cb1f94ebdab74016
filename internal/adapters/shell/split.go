package shell

import (
	shellwords "github.com/mattn/go-shellwords"
	"go.trai.ch/zerr"
)

// SplitCommandLine splits a configured command string into argv parts,
// honoring shell quoting. Configured commands like
//
//	drush --alias @staging
//
// become a command name plus leading arguments.
func SplitCommandLine(cmdline string) ([]string, error) {
	parts, err := shellwords.Parse(cmdline)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to parse command line"), "cmdline", cmdline)
	}
	if len(parts) == 0 {
		return nil, zerr.With(zerr.New("empty command line"), "cmdline", cmdline)
	}

	return parts, nil
}
