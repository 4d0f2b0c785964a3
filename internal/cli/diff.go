package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/paradoxe/paradoxe/internal/differ"
	"github.com/spf13/cobra"
)

// diffCmd represents the diff command
var diffCmd = &cobra.Command{
	Use:   "diff <report-a.json> <report-b.json>",
	Short: "Compare two evaluation reports for drift",
	Long: `Diff compares two evaluation reports produced by 'eval --metrics-json'
and reports any divergence. Nonce-bearing and timing fields are masked,
so two runs of the same input under the same policy should show none.

Example:
  paradoxe eval -i "input" --metrics-json > a.json
  paradoxe eval -i "input" --metrics-json > b.json
  paradoxe diff a.json b.json`,
	Args:         cobra.ExactArgs(2),
	SilenceUsage: true,
	RunE:         runDiff,
}

var diffJSONFlag bool

func init() {
	diffCmd.Flags().BoolVar(&diffJSONFlag, "json", false, "Output raw drift entries as JSON")
}

// GetDiffCmd returns the diff command
func GetDiffCmd() *cobra.Command {
	return diffCmd
}

func runDiff(cmd *cobra.Command, args []string) error {
	docA, err := os.ReadFile(args[0])
	if err != nil {
		return &ExitError{Code: ExitNoInput, Msg: fmt.Sprintf("cannot read report: %v", err)}
	}
	docB, err := os.ReadFile(args[1])
	if err != nil {
		return &ExitError{Code: ExitNoInput, Msg: fmt.Sprintf("cannot read report: %v", err)}
	}

	drifts, err := differ.Compare(docA, docB)
	if err != nil {
		return fmt.Errorf("diff failed: %w", err)
	}

	if diffJSONFlag {
		out, err := json.MarshalIndent(drifts, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal drift: %w", err)
		}
		fmt.Println(string(out))
		if len(drifts) > 0 {
			return &ExitError{Code: 1}
		}
		return nil
	}

	if len(drifts) == 0 {
		fmt.Printf("%s✓ No drift detected%s\n", colorGreen, colorReset)
		return nil
	}

	fmt.Printf("%s%d drift(s) detected:%s\n", colorYellow, len(drifts), colorReset)
	for _, line := range differ.Translate(drifts) {
		fmt.Printf("  %s\n", line)
	}
	return &ExitError{Code: 1}
}
