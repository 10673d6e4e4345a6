package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/dmitrymomot/joi/pkg/joi"
)

// errReported marks failures whose verdict was already printed.
var errReported = errors.New("reported")

const allGood = "All good ~;)"

var (
	okColor     = color.New(color.FgGreen, color.Bold)
	failColor   = color.New(color.FgRed, color.Bold)
	schemaColor = color.New(color.FgYellow, color.Bold)
	boldColor   = color.New(color.Bold)
)

// printVerdict writes the result and returns the error carrying its exit code.
func printVerdict(w io.Writer, res joi.Result, message string) error {
	switch {
	case !res.Failed():
		okColor.Fprintln(w, allGood)
		return nil
	case res.IsSchemaError():
		schemaColor.Fprint(w, "schema error: ")
		fmt.Fprintln(w, res.Message())
		return &exitError{code: ExitSchemaError, err: errReported}
	default:
		failColor.Fprint(w, "invalid: ")
		if res.Field() != "" {
			boldColor.Fprint(w, res.Field()+": ")
		}
		fmt.Fprintln(w, message)
		return &exitError{code: ExitInvalid, err: errReported}
	}
}

// schemaExit tags load errors caused by malformed rule sets.
func schemaExit(err error) error {
	if joi.IsSchemaError(err) {
		return &exitError{code: ExitSchemaError, err: err}
	}
	return err
}
