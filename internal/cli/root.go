package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// Exit codes returned by Execute.
const (
	ExitOK          = 0
	ExitInvalid     = 1
	ExitSchemaError = 2
)

// exitError carries a process exit code through cobra.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return ExitInvalid
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}
}

// NewRootCmd builds the joi command tree.
func NewRootCmd() *cobra.Command {
	var noColor bool

	root := &cobra.Command{
		Use:   "joi",
		Short: "Validate records against declarative constraint schemas",
		Long: `joi validates flat records of integers and strings against rule sets
declared in YAML or JSON schema files.

Examples:
	# Validate a record
	joi validate --schemas schemas.yaml --schema user --record user.json

	# Describe the schemas as JSON Schema
	joi schemas --schemas schemas.yaml --json-schema

	# Run the HTTP validation service
	JOI_SCHEMA_FILE=schemas.yaml joi serve

Exit codes:
	0  the record is valid
	1  the record is invalid or the command failed
	2  the schema is malformed`,
		Version:       fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if noColor {
				color.NoColor = true
			}
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newValidateCmd(),
		newSchemasCmd(),
		newServeCmd(),
		newDemoCmd(),
		newNameCmd(),
	)
	return root
}

// Run executes the command tree with args and returns the exit code.
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(stderr, color.RedString("error:"), err)
	}
	return ExitCode(err)
}

func Execute() {
	os.Exit(Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
