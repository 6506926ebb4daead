package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/pawswipe/internal/config"
	"github.com/roach88/pawswipe/internal/swipe"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Profile string         `json:"profile"`
	Valid   bool           `json:"valid"`
	Config  swipe.Config   `json:"config"`
	Issues  []config.Issue `json:"issues"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <profile>",
		Short: "Validate a tuning profile",
		Long: `Load a YAML tuning profile and validate the merged configuration.

Non-positive values are errors. Thresholds out of order
(engage <= intent <= commit) are warnings: the engine still runs
with them, so warnings do not fail validation.

Exit codes:
  0 - Profile is valid (warnings allowed)
  1 - Profile has errors
  2 - Command error (file not found, malformed YAML, etc.)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true, // Don't print usage on errors
		SilenceErrors: true, // Don't print errors - we handle our own error output
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	out := opts.formatter(cmd)

	profile, err := config.LoadProfile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load profile", err)
	}
	out.VerboseLog("Loaded profile %q from %s", profile.Name, path)

	cfg := profile.Config()
	issues, err := config.Validate(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to validate profile", err)
	}

	result := ValidationResult{
		Profile: profile.Name,
		Valid:   !config.HasErrors(issues),
		Config:  cfg,
		Issues:  issues,
	}
	if result.Issues == nil {
		result.Issues = []config.Issue{}
	}

	if !result.Valid {
		msg := fmt.Sprintf("profile %s has errors", profile.Name)
		if out.JSON() {
			if err := out.Failure(CodeInvalidProfile, msg, result); err != nil {
				return err
			}
		} else {
			printIssues(out, result.Issues)
			out.Printf("✗ %s\n", msg)
		}
		return NewExitError(ExitFailure, msg)
	}

	if out.JSON() {
		return out.Success(result)
	}
	printIssues(out, result.Issues)
	out.Printf("✓ profile %s is valid\n", profile.Name)
	return nil
}

func printIssues(out *OutputFormatter, issues []config.Issue) {
	for _, issue := range issues {
		out.Printf("  %s\n", issue.Error())
	}
}
