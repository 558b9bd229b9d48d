package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/constants"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarizes the results of the last batch",
	Long:  `Reads the per-file results in ` + constants.EnvOutDir + ` and prints key, note and diagnostic totals.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := analyzeResults(constants.GetOutDir())
		if err != nil {
			return err
		}
		r.print(os.Stdout)
		return nil
	},
}

var resultFilename = regexp.MustCompile(`^\d{5}_.*\.json$`)

type resultsReport struct {
	numFiles    int
	numNotes    int
	numChords   int
	keys        map[string]int
	diagnostics map[model.DiagnosticKind]int
}

func analyzeResults(dir string) (resultsReport, error) {
	report := resultsReport{keys: make(map[string]int), diagnostics: make(map[model.DiagnosticKind]int)}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, errors.Wrap(err, "Could not read output dir")
	}
	for _, entry := range entries {
		if entry.IsDir() || !resultFilename.MatchString(entry.Name()) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return report, errors.Wrapf(err, "Could not read %s", entry.Name())
		}
		var res model.AnalysisResult
		if err := json.Unmarshal(data, &res); err != nil {
			return report, errors.Wrapf(err, "Could not decode %s", entry.Name())
		}

		report.numFiles++
		report.numNotes += len(res.Events)
		report.numChords += len(res.Chords)
		report.keys[res.Key]++
		for _, d := range res.Diagnostics {
			report.diagnostics[d.Kind]++
		}
	}
	return report, nil
}

func (r resultsReport) print(w io.Writer) {
	fmt.Fprintf(w, "files: %v\n", r.numFiles)
	fmt.Fprintf(w, "notes: %v\n", r.numNotes)
	fmt.Fprintf(w, "chords: %v\n", r.numChords)
	for _, k := range util.SortedKeys(r.keys) {
		fmt.Fprintf(w, "key %s: %v\n", k, r.keys[k])
	}
	for _, kind := range util.SortedKeys(r.diagnostics) {
		fmt.Fprintf(w, "diagnostic %v: %v\n", kind, r.diagnostics[kind])
	}
}
