package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	flag "github.com/spf13/pflag"

	pastemd "github.com/pastemd/pastemd"
	"github.com/pastemd/pastemd/internal/config"
	"github.com/pastemd/pastemd/internal/hints"
)

// checkResult is one line of doctor output.
type checkResult struct {
	Name   string `json:"name"`
	OK     bool   `json:"ok"`
	Detail string `json:"detail,omitempty"`
}

// runDoctorCmd verifies the external pieces a conversion needs: the
// engine binary, the system clipboard, and a writable temp directory.
func runDoctorCmd(args []string, env *Environment) int {
	var (
		configPath string
		asJSON     bool
	)
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.SetOutput(env.Stderr)
	fs.StringVar(&configPath, "config", "", "config file path (default: search standard locations)")
	fs.BoolVar(&asJSON, "json", false, "machine-readable output")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsage
	}

	cfg, err := loadConvertConfig(configPath)
	if err != nil {
		reportError(env, err, nil)
		return exitCodeFor(err)
	}

	checks := []checkResult{
		checkEngine(cfg),
		checkClipboard(),
		checkTempDir(),
		checkRules(cfg),
	}

	if asJSON {
		if err := json.NewEncoder(env.Stdout).Encode(checks); err != nil {
			return ExitGeneral
		}
	} else {
		printChecks(env.Stdout, checks)
	}

	for _, c := range checks {
		if !c.OK {
			return ExitGeneral
		}
	}
	return ExitSuccess
}

// checkEngine probes the configured engine binary for its version.
func checkEngine(cfg *config.Config) checkResult {
	result := checkResult{Name: "engine"}

	var opts []pastemd.Option
	if cfg.Engine.Path != "" {
		opts = append(opts, pastemd.WithEnginePath(cfg.Engine.Path))
	}
	svc, err := pastemd.New(opts...)
	if err != nil {
		result.Detail = err.Error()
		return result
	}

	version, err := svc.Probe(context.Background())
	if err != nil {
		result.Detail = err.Error() + hints.ForEngineMissing(cfg.Engine.Path)
		return result
	}
	result.OK = true
	result.Detail = version
	return result
}

// checkClipboard reports whether the platform clipboard is usable.
func checkClipboard() checkResult {
	result := checkResult{Name: "clipboard"}
	if pastemd.ClipboardAvailable() {
		result.OK = true
		return result
	}
	result.Detail = "unavailable" + hints.ForClipboard()
	return result
}

// checkTempDir verifies the temp directory is writable; Word output
// round-trips through a temp file there.
func checkTempDir() checkResult {
	result := checkResult{Name: "tempdir", Detail: os.TempDir()}

	f, err := os.CreateTemp("", "pastemd-doctor-*")
	if err != nil {
		result.Detail = err.Error()
		return result
	}
	name := f.Name()
	f.Close()
	os.Remove(name)

	result.OK = true
	return result
}

// checkRules compiles the active rule set.
func checkRules(cfg *config.Config) checkResult {
	result := checkResult{Name: "rules"}

	var opts []pastemd.Option
	if cfg.Rules.File != "" {
		opts = append(opts, pastemd.WithRuleFile(cfg.Rules.File))
	}
	svc, err := pastemd.New(opts...)
	if err != nil {
		result.Detail = err.Error()
		return result
	}

	result.OK = true
	source := "embedded defaults"
	if cfg.Rules.File != "" {
		source = filepath.Clean(cfg.Rules.File)
	}
	result.Detail = fmt.Sprintf("%d rules (%s)", len(svc.Rules()), source)
	return result
}

// printChecks renders human-readable doctor output.
func printChecks(w io.Writer, checks []checkResult) {
	for _, c := range checks {
		mark := "ok"
		if !c.OK {
			mark = "FAIL"
		}
		if c.Detail != "" {
			fmt.Fprintf(w, "%-4s %-10s %s\n", mark, c.Name, c.Detail)
			continue
		}
		fmt.Fprintf(w, "%-4s %s\n", mark, c.Name)
	}
}
