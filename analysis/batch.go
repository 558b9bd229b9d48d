package analysis

import (
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/file"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/util"
	"go.uber.org/zap"
)

type Outcome struct {
	FileNum uint32
	Path    string
	Result  *model.AnalysisResult
}

type Summary struct {
	Files       int `json:"files"`
	Analyzed    int `json:"analyzed"`
	Skipped     int `json:"skipped"`
	Notes       int `json:"notes"`
	Diagnostics int `json:"diagnostics"`
}

// ProcessAll analyzes every file in m in file number order. Files that cannot
// be parsed at all are logged and skipped; the rest of the batch carries on.
// handle, when not nil, is called with each successful outcome as soon as it
// is ready.
func (a *Analyzer) ProcessAll(m file.NumToPath, handle func(Outcome) error) ([]Outcome, Summary, error) {
	var outcomes []Outcome
	summary := Summary{Files: len(m)}

	keys := util.SortedKeys(m)
	for i, num := range keys {
		path := m[num]
		a.Logger.Info("Processing midi file",
			zap.Int("index", i+1),
			zap.Int("total", len(keys)),
			zap.String("file", path))

		res, err := a.AnalyzeFile(path)
		if err != nil {
			a.Logger.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			summary.Skipped++
			continue
		}

		out := Outcome{FileNum: num, Path: path, Result: res}
		if handle != nil {
			if err := handle(out); err != nil {
				return outcomes, summary, err
			}
		}
		outcomes = append(outcomes, out)
		summary.Analyzed++
		summary.Notes += len(res.Events)
		summary.Diagnostics += len(res.Diagnostics)
	}
	return outcomes, summary, nil
}
