package midi

import (
	"sort"

	"github.com/AIAA2205L02ProjectAmadeus/key-cut/model"
	"github.com/AIAA2205L02ProjectAmadeus/key-cut/util"
)

// DetectTracks summarizes every decoded track: its last name, the distinct
// programs it selects and how many onsets it contains.
func DetectTracks(f *File) []model.TrackInfo {
	res := make([]model.TrackInfo, 0, len(f.Tracks))
	for _, track := range f.Tracks {
		info := model.TrackInfo{Index: track.Index, Programs: []int{}}
		programs := make(map[int]bool)
		for _, ev := range track.Events {
			switch ev.Kind {
			case TrackName:
				info.Name = ev.Text
			case ProgramChange:
				programs[int(ev.Program)] = true
			case NoteOn:
				info.NoteCount++
			}
		}
		info.Programs = append(info.Programs, util.GetKeys(programs)...)
		sort.Ints(info.Programs)
		res = append(res, info)
	}
	return res
}
