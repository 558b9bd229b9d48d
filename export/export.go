package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/util"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrNoEvents          = errors.New("no events to export")
)

const maxReportChords = 20

var Formats = []string{"json", "yaml", "csv", "text"}

// Write encodes result in format: json, yaml, csv (events only) or text/txt.
func Write(w io.Writer, result *model.AnalysisResult, format string) error {
	switch strings.ToLower(format) {
	case "json":
		return writeJSON(w, result)
	case "yaml", "yml":
		return writeYAML(w, result)
	case "csv":
		return writeCSV(w, result.Events)
	case "text", "txt":
		return writeText(w, result)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%q (supported: %s)", format, strings.Join(Formats, ", "))
	}
}

// WriteFile encodes into memory first so that a failed export leaves no file.
func WriteFile(path string, result *model.AnalysisResult, format string) error {
	var buf bytes.Buffer
	if err := Write(&buf, result, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0666); err != nil {
		return errors.Wrapf(err, "Could not write %s", path)
	}
	return nil
}

func writeJSON(w io.Writer, result *model.AnalysisResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(result), "Failed to export JSON")
}

func writeYAML(w io.Writer, result *model.AnalysisResult) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(result); err != nil {
		return errors.Wrap(err, "Failed to export YAML")
	}
	return errors.Wrap(enc.Close(), "Failed to export YAML")
}

var csvHeader = []string{"note", "velocity", "start", "end", "channel", "track", "track_name", "program"}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func writeCSV(w io.Writer, events []model.NoteEvent) error {
	if len(events) == 0 {
		return ErrNoEvents
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return errors.Wrap(err, "Failed to export CSV")
	}
	for _, ev := range events {
		row := []string{
			strconv.Itoa(int(ev.Pitch)),
			strconv.Itoa(int(ev.Velocity)),
			formatFloat(ev.Start),
			formatFloat(ev.End),
			strconv.Itoa(int(ev.Channel)),
			strconv.Itoa(ev.Track),
			ev.TrackName,
			strconv.Itoa(ev.Program),
		}
		if err := cw.Write(row); err != nil {
			return errors.Wrap(err, "Failed to export CSV")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "Failed to export CSV")
}

func writeText(w io.Writer, result *model.AnalysisResult) error {
	var b strings.Builder
	b.WriteString("=== Music Analysis Report ===\n\n")

	if result.Key != "" {
		fmt.Fprintf(&b, "Detected Key: %s\n\n", result.Key)
	}

	if len(result.TrackMapping) > 0 {
		b.WriteString("Track Mapping:\n")
		for _, name := range util.SortedKeys(result.TrackMapping) {
			fmt.Fprintf(&b, "  %s: %s\n", name, result.TrackMapping[name])
		}
		b.WriteString("\n")
	}

	if len(result.Chords) > 0 {
		fmt.Fprintf(&b, "Chords (%d total):\n", len(result.Chords))
		for i, c := range result.Chords {
			if i == maxReportChords {
				fmt.Fprintf(&b, "  ... and %d more\n", len(result.Chords)-maxReportChords)
				break
			}
			fmt.Fprintf(&b, "  %.2fs: %s\n", c.Time, c.Name())
		}
		b.WriteString("\n")
	}

	if len(result.RhythmPatterns) > 0 {
		b.WriteString("Top Rhythm Patterns:\n")
		for _, p := range result.RhythmPatterns {
			fmt.Fprintf(&b, "  Interval: %.4fs, Count: %d\n", p.Interval, p.Count)
		}
		b.WriteString("\n")
	}

	if len(result.Events) > 0 {
		fmt.Fprintf(&b, "Total Events: %d\n", len(result.Events))
		fmt.Fprintf(&b, "Duration: %.2fs\n", result.Duration())
	}

	_, err := io.WriteString(w, b.String())
	return errors.Wrap(err, "Failed to export text")
}
