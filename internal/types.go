package internal

import "time"

// FileState 描述单个文件在一次运行中的状态
type FileState int

const (
	StateScanned FileState = iota
	StateUnique
	StateOriginal
	StateDuplicatePending
	StateDuplicateMoved
	StateDuplicateFailed
)

func (s FileState) String() string {
	switch s {
	case StateScanned:
		return "scanned"
	case StateUnique:
		return "unique"
	case StateOriginal:
		return "original"
	case StateDuplicatePending:
		return "duplicate-pending"
	case StateDuplicateMoved:
		return "duplicate-moved"
	case StateDuplicateFailed:
		return "duplicate-failed"
	}
	return "unknown"
}

// FileRecord 一个成功计算哈希的文件
type FileRecord struct {
	Path   string `json:"path"`
	Size   int64  `json:"size_bytes"`
	Digest string `json:"digest"`
}

// DuplicateGroup 拥有相同摘要的文件集合，成员按发现顺序排列。
// 第一个成员是原件，永远不会被移动。
type DuplicateGroup struct {
	Digest  string       `json:"digest"`
	Members []FileRecord `json:"members"`
}

func (g DuplicateGroup) Original() FileRecord {
	return g.Members[0]
}

func (g DuplicateGroup) Duplicates() []FileRecord {
	return g.Members[1:]
}

// Move 一个重复文件的处理结果
type Move struct {
	Source      string    `json:"source"`
	Destination string    `json:"destination,omitempty"`
	Size        int64     `json:"size_bytes"`
	State       FileState `json:"-"`
	Simulated   bool      `json:"simulated,omitempty"`
	Err         error     `json:"-"`
}

// GroupResult 一个重复组的处理结果
type GroupResult struct {
	Group DuplicateGroup `json:"group"`
	Kind  string         `json:"kind"`
	Moves []Move         `json:"moves"`
}

// RunSummary 运行统计，各阶段分别产出后通过 Merge 合并
type RunSummary struct {
	FilesScanned    int           `json:"files_scanned"`
	DuplicatesFound int           `json:"duplicates_found"`
	SpaceSavedBytes int64         `json:"space_saved_bytes"`
	OutputLocation  string        `json:"output_location"`
	HashFailures    int           `json:"hash_failures"`
	MoveFailures    int           `json:"move_failures"`
	DryRun          bool          `json:"dry_run"`
	Duration        time.Duration `json:"-"`
}

// Merge 合并另一个阶段的统计并返回新值
func (s RunSummary) Merge(o RunSummary) RunSummary {
	s.FilesScanned += o.FilesScanned
	s.DuplicatesFound += o.DuplicatesFound
	s.SpaceSavedBytes += o.SpaceSavedBytes
	s.HashFailures += o.HashFailures
	s.MoveFailures += o.MoveFailures
	if s.OutputLocation == "" {
		s.OutputLocation = o.OutputLocation
	}
	s.DryRun = s.DryRun || o.DryRun
	s.Duration += o.Duration
	return s
}
