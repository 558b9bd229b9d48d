package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/analysis"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/constants"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/export"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/midi"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// 64 MiB is far beyond any real midi file
const maxBodyBytes = 64 << 20

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", constants.DefaultAddr, "listen address")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves analyses over HTTP",
	Long:  `Serves POST /analyze (raw midi body) and GET /health.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, logger, err := newAnalyzer()
		if err != nil {
			return err
		}
		defer logger.Sync()

		logger.Info("Listening", zap.String("addr", serveAddr))
		return http.ListenAndServe(serveAddr, NewRouter(a))
	},
}

func NewRouter(a *analysis.Analyzer) http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/analyze", HandleAnalyze(a)).Methods("POST")
	router.HandleFunc("/health", HandleHealth).Methods("GET")
	return cors.Default().Handler(router)
}

// writeJSON encodes v before touching the response so that an encoding
// failure can still be reported as a 500.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return errors.Wrap(err, "Failed to encode response")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

func writeError(w http.ResponseWriter, status int, err error) error {
	return writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.HealthResponse{Status: "ok"})
}

// HandleAnalyze analyzes the raw midi file in the request body. The window,
// grid and top_k query parameters override the configured values; format
// selects an export format other than json.
func HandleAnalyze(a *analysis.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqBody, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			writeError(w, http.StatusBadRequest, errors.Wrap(err, "Could not read request body"))
			return
		}

		local, err := withQueryOverrides(a, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}

		res, err := local.AnalyzeBytes("request", reqBody)
		if errors.Is(err, midi.ErrMalformedContainer) {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		if err != nil {
			a.Logger.Error("Analysis failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, err)
			return
		}

		format := r.URL.Query().Get("format")
		if format == "" || format == "json" {
			if err := writeJSON(w, http.StatusOK, res); err != nil {
				a.Logger.Error("Failed to write response", zap.Error(err))
			}
			return
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, res, format); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}

func withQueryOverrides(a *analysis.Analyzer, r *http.Request) (*analysis.Analyzer, error) {
	q := r.URL.Query()
	cfg := a.Config
	if v := q.Get("window"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid window %q", v)
		}
		cfg.ChordWindow = f
	}
	if v := q.Get("grid"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid grid %q", v)
		}
		cfg.QuantizeGrid = f
	}
	if v := q.Get("top_k"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, errors.Wrapf(err, "Invalid top_k %q", v)
		}
		cfg.RhythmTopK = n
	}
	return a.WithConfig(cfg)
}
