package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/analysis"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/constants"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/export"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/file"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const summaryFilename = "summary.json"

func init() {
	rootCmd.AddCommand(batchCmd)
}

var batchCmd = &cobra.Command{
	Use:   "batch [maxNum]",
	Short: "Analyzes every midi file under the media path",
	Long: `Analyzes every .mid/.midi file under ` + constants.EnvMediaPath + ` and writes one
JSON result per file plus a summary into ` + constants.EnvOutDir + `.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 1 {
			arg1, err := strconv.Atoi(args[0])
			if err != nil {
				return errors.Wrapf(err, "Invalid maxNum %q", args[0])
			}
			maxNum = arg1
		}

		a, logger, err := newAnalyzer()
		if err != nil {
			return err
		}
		defer logger.Sync()

		summary, err := Batch(a, constants.GetMediaDir(), constants.GetOutDir(), maxNum)
		if err != nil {
			return err
		}
		logger.Info("Batch finished",
			zap.Int("files", summary.Files),
			zap.Int("analyzed", summary.Analyzed),
			zap.Int("skipped", summary.Skipped))
		return nil
	},
}

// Batch analyzes up to maxNum files under mediaDir (0 for all), replacing the
// contents of outDir with the results.
func Batch(a *analysis.Analyzer, mediaDir string, outDir string, maxNum int) (analysis.Summary, error) {
	if err := util.RecreateOutputDir(outDir); err != nil {
		return analysis.Summary{}, err
	}
	paths, err := util.GatherAllMidiPaths(mediaDir, maxNum)
	if err != nil {
		return analysis.Summary{}, err
	}
	fileNumMap := file.CreateFileNumMap(paths)

	_, summary, err := a.ProcessAll(fileNumMap, func(o analysis.Outcome) error {
		path := filepath.Join(outDir, file.OutputName(o.FileNum, o.Path, "json"))
		return export.WriteFile(path, o.Result, "json")
	})
	if err != nil {
		return summary, err
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return summary, errors.Wrap(err, "Could not encode summary")
	}
	if err := os.WriteFile(filepath.Join(outDir, summaryFilename), data, 0666); err != nil {
		return summary, errors.Wrap(err, "Could not write summary")
	}
	return summary, nil
}
