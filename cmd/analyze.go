package cmd

import (
	"os"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/export"
	"github.com/spf13/cobra"
)

var (
	analyzeFormat string
	analyzeOut    string
)

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "json", "output format: json, yaml, csv or text")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <file>",
	Short: "Analyzes one midi file",
	Long:  `Analyzes one midi file and writes the key, chords, rhythm patterns and notes.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, logger, err := newAnalyzer()
		if err != nil {
			return err
		}
		defer logger.Sync()

		res, err := a.AnalyzeFile(args[0])
		if err != nil {
			return err
		}
		if analyzeOut == "" {
			return export.Write(os.Stdout, res, analyzeFormat)
		}
		return export.WriteFile(analyzeOut, res, analyzeFormat)
	},
}
