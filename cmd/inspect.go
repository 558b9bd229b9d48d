package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/midi"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Lists the tracks of a midi file",
	Long:  `Lists the header, tempo map and tracks of a midi file along with any decoding problems.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return inspect(os.Stdout, args[0])
	},
}

func inspect(w io.Writer, path string) error {
	f, diags, err := midi.ReadMidiFile(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "header: %v\n", f.Header)
	fmt.Fprintf(w, "duration: %.3fs\n", f.Duration)
	for _, bp := range f.Tempo.Breakpoints() {
		fmt.Fprintf(w, "tempo: tick %d, %d us per quarter\n", bp.Tick, bp.MicrosPerQuarter)
	}
	for _, track := range midi.DetectTracks(f) {
		fmt.Fprintf(w, "track %d: name %q, programs %v, notes %d\n", track.Index, track.Name, track.Programs, track.NoteCount)
	}
	for _, d := range diags {
		fmt.Fprintf(w, "diagnostic: %v\n", d)
	}
	return nil
}
