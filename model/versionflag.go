package model

import (
	"fmt"

	"github.com/alecthomas/kong"
)

// VersionFlag prints the resolved version and exits before any command runs.
// The version string is injected through kong.Vars at parse time.
type VersionFlag string

// Decode implements kong.MapperValue; the flag carries no value of its own.
func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }

// IsBool marks the flag as boolean so kong does not expect an argument.
func (v VersionFlag) IsBool() bool { return true }

// BeforeApply prints the injected version and stops further processing.
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	fmt.Println(vars["version"])
	app.Exit(0)
	return nil
}
