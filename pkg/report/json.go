package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupmover/internal"
)

type Document struct {
	RunID      string    `json:"run_id"`
	Root       string    `json:"root"`
	Algorithm  string    `json:"algorithm"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Duration   string    `json:"duration_human"`
	Summary    Summary   `json:"summary"`
	Groups     []Group   `json:"groups"`
}

type Summary struct {
	internal.RunSummary
	SpaceSavedHuman string `json:"space_saved_human"`
}

type Group struct {
	Digest   string `json:"digest"`
	Kind     string `json:"kind"`
	Size     int64  `json:"file_size"`
	Original string `json:"original"`
	Moves    []Move `json:"moves"`
}

type Move struct {
	Source      string `json:"source"`
	Destination string `json:"destination,omitempty"`
	State       string `json:"state"`
	Simulated   bool   `json:"simulated,omitempty"`
	Error       string `json:"error,omitempty"`
}

// NewDocument 生成带有运行 ID 的 JSON 报告
func NewDocument(root, algorithm string, started time.Time, results []internal.GroupResult, summary internal.RunSummary) Document {
	finished := started.Add(summary.Duration)
	doc := Document{
		RunID:      uuid.New().String(),
		Root:       root,
		Algorithm:  algorithm,
		StartedAt:  started,
		FinishedAt: finished,
		Duration:   summary.Duration.String(),
		Summary:    Summary{RunSummary: summary, SpaceSavedHuman: FormatBytes(summary.SpaceSavedBytes)},
		Groups:     make([]Group, 0, len(results)),
	}

	for _, res := range results {
		g := Group{
			Digest:   res.Group.Digest,
			Kind:     res.Kind,
			Size:     res.Group.Original().Size,
			Original: res.Group.Original().Path,
		}
		for _, m := range res.Moves {
			jm := Move{
				Source:      m.Source,
				Destination: m.Destination,
				State:       m.State.String(),
				Simulated:   m.Simulated,
			}
			if m.Err != nil {
				jm.Error = m.Err.Error()
			}
			g.Moves = append(g.Moves, jm)
		}
		doc.Groups = append(doc.Groups, g)
	}
	return doc
}

// WriteJSON 把报告写入 path
func WriteJSON(fs afero.Fs, path string, doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, append(data, '\n'), 0644)
}
