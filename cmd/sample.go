package cmd

import (
	"os"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/sample"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	sampleRepeats int
	sampleStep    float64
	sampleBPM     float64
)

func init() {
	sampleCmd.Flags().IntVar(&sampleRepeats, "repeats", 2, "number of times the scale is played")
	sampleCmd.Flags().Float64Var(&sampleStep, "step", 0.5, "seconds per note")
	sampleCmd.Flags().Float64Var(&sampleBPM, "bpm", 120, "tempo written to the file")
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample <out.mid>",
	Short: "Writes a C major scale midi file",
	Long:  `Writes a C major scale midi file, handy for trying out the other commands.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := sample.FromNotes(sample.CMajorScale(sampleRepeats, sampleStep), 480, sampleBPM)
		if err != nil {
			return err
		}
		data, err := sample.Bytes(s)
		if err != nil {
			return err
		}
		return errors.Wrap(os.WriteFile(args[0], data, 0666), "Could not write sample")
	},
}
