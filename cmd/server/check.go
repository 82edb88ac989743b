package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"validarfc/internal/rfc"
)

var checkColor string

var checkCmd = &cobra.Command{
	Use:   "check <rfc>...",
	Short: "Validate identifiers without starting the server",
	Long: `Validate one or more RFC identifiers locally. Nothing is recorded in the
history. The command exits non-zero when any identifier is invalid.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkColor, "color", "auto", "Colorize output: auto, always, never")
}

func runCheck(cmd *cobra.Command, args []string) error {
	switch checkColor {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}

	valid := color.New(color.FgHiGreen, color.Bold)
	invalid := color.New(color.FgRed, color.Bold)

	out := cmd.OutOrStdout()
	failed := 0
	for _, raw := range args {
		normalized, ok := rfc.Validate(raw)
		if ok {
			valid.Fprint(out, "VALID  ")
		} else {
			invalid.Fprint(out, "INVALID")
			failed++
		}
		fmt.Fprintf(out, " %s\n", normalized)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d identifiers invalid", failed, len(args))
	}
	return nil
}
