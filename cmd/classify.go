package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [text]",
	Short: "Run the configured sentiment pipeline once and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		annotator, err := newAnnotator(config.Sentiment, logger)
		if err != nil {
			return err
		}

		ann := annotator.Annotate(cmd.Context(), strings.Join(args, " "))
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\n", ann.Label, ann.Score)
		return nil
	},
}
