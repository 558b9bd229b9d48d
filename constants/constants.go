package constants

import "os"

const (
	DefaultChordWindow  = 0.5
	DefaultQuantizeGrid = 0.125
	DefaultRhythmTopK   = 5

	// lower bounds in seconds for configured windows and grids
	MinChordWindow  = 0.001
	MinQuantizeGrid = 0.001

	// 120 BPM
	DefaultMicrosPerQuarter = 500000

	DefaultAddr = ":8080"
)

const (
	EnvChordWindow  = "KEYCUT_CHORD_WINDOW"
	EnvQuantizeGrid = "KEYCUT_QUANTIZE_GRID"
	EnvRhythmTopK   = "KEYCUT_RHYTHM_TOP_K"
	EnvLogLevel     = "KEYCUT_LOG_LEVEL"
	EnvMediaPath    = "KEYCUT_MEDIA_PATH"
	EnvOutDir       = "KEYCUT_OUT_DIR"
)

func GetOutDir() string {
	path := os.Getenv(EnvOutDir)
	if path != "" {
		return path
	}
	return "./out"
}

func GetMediaDir() string {
	path := os.Getenv(EnvMediaPath)
	if path != "" {
		return path
	}
	return "."
}
