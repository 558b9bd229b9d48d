package key

import (
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const Unknown = "Unknown"

// Krumhansl-Kessler probe tone ratings, rooted at C.
var (
	majorProfile = [12]float64{6.35, 2.23, 3.48, 2.33, 4.38, 4.09, 2.52, 5.19, 2.39, 3.66, 2.29, 2.88}
	minorProfile = [12]float64{6.33, 2.68, 3.52, 5.38, 2.60, 3.53, 2.54, 4.75, 3.98, 2.69, 3.34, 3.17}
)

type Mode string

const (
	Major Mode = "major"
	Minor Mode = "minor"
)

type Estimate struct {
	Root        int
	Mode        Mode
	Correlation float64
}

func (e Estimate) String() string {
	return model.NoteNames[e.Root] + " " + string(e.Mode)
}

// Profile sums note durations per pitch class.
func Profile(notes []model.NoteEvent) []float64 {
	res := make([]float64, 12)
	for _, n := range notes {
		res[n.PitchClass()] += n.Duration()
	}
	return res
}

func rotate(profile [12]float64, root int) []float64 {
	res := make([]float64, 12)
	for i := range res {
		res[i] = profile[(i-root+12)%12]
	}
	return res
}

var modes = [2]Mode{Major, Minor}

// EstimateKey correlates the duration profile of notes against every major and
// minor rotation. ok is false when the profile is empty or flat, where the
// correlation is undefined.
func EstimateKey(notes []model.NoteEvent) (Estimate, bool) {
	profile := Profile(notes)
	if floats.Sum(profile) == 0 || stat.Variance(profile, nil) == 0 {
		return Estimate{}, false
	}

	var scores [2][12]float64
	for m, mode := range modes {
		ref := majorProfile
		if mode == Minor {
			ref = minorProfile
		}
		for root := 0; root < 12; root++ {
			scores[m][root] = stat.Correlation(profile, rotate(ref, root), nil)
		}
	}
	return best(scores), true
}

// best picks the highest score, indexed by mode (major first) then root.
// Equal scores keep major over minor, then the lowest root.
func best(scores [2][12]float64) Estimate {
	res := Estimate{Root: 0, Mode: modes[0], Correlation: scores[0][0]}
	for m, mode := range modes {
		for root, r := range scores[m] {
			if r > res.Correlation {
				res = Estimate{Root: root, Mode: mode, Correlation: r}
			}
		}
	}
	return res
}

// Detect returns the best key as "<root> <mode>", or Unknown.
func Detect(notes []model.NoteEvent) string {
	est, ok := EstimateKey(notes)
	if !ok {
		return Unknown
	}
	return est.String()
}
