package relocator

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupmover/internal"
	"github.com/moyu-x/dupmover/pkg/logger"
	"github.com/moyu-x/dupmover/pkg/namer"
)

// Relocator 把每个重复组中除原件以外的文件移动到输出目录
type Relocator struct {
	fs        afero.Fs
	outputDir string
	dryRun    bool
	namer     *namer.Namer

	// mu 保证"查找可用名称 + 移动"整体串行
	mu sync.Mutex

	// OnMove 每个重复文件处理完成后调用（可为 nil）
	OnMove func(internal.Move)
	// OnGroup 每个重复组处理完成后调用（可为 nil），可补充结果中的字段
	OnGroup func(*internal.GroupResult)
}

func New(fs afero.Fs, outputDir string, dryRun bool) *Relocator {
	return &Relocator{
		fs:        fs,
		outputDir: outputDir,
		dryRun:    dryRun,
		namer:     namer.New(fs),
	}
}

// RelocateAll 依次处理所有重复组，返回每组结果和合并后的统计
func (r *Relocator) RelocateAll(ctx context.Context, groups []internal.DuplicateGroup) ([]internal.GroupResult, internal.RunSummary) {
	summary := internal.RunSummary{OutputLocation: r.outputDir, DryRun: r.dryRun}
	results := make([]internal.GroupResult, 0, len(groups))

	for _, g := range groups {
		if ctx.Err() != nil {
			logger.Get().Warn().Msg("运行被中断，剩余重复组未处理")
			break
		}
		res, s := r.Relocate(ctx, g)
		if r.OnGroup != nil {
			r.OnGroup(&res)
		}
		results = append(results, res)
		summary = summary.Merge(s)
	}
	return results, summary
}

// Relocate 处理一个重复组。原件不会被移动；单个文件失败不影响同组其他文件。
func (r *Relocator) Relocate(ctx context.Context, group internal.DuplicateGroup) (internal.GroupResult, internal.RunSummary) {
	res := internal.GroupResult{Group: group}
	summary := internal.RunSummary{OutputLocation: r.outputDir, DryRun: r.dryRun}
	size := group.Original().Size

	for _, dup := range group.Duplicates() {
		if ctx.Err() != nil {
			break
		}

		m := r.relocateOne(dup.Path, size)
		res.Moves = append(res.Moves, m)

		switch m.State {
		case internal.StateDuplicateMoved:
			summary.DuplicatesFound++
			summary.SpaceSavedBytes += size
		case internal.StateDuplicateFailed:
			summary.MoveFailures++
		}

		if r.OnMove != nil {
			r.OnMove(m)
		}
	}
	return res, summary
}

func (r *Relocator) relocateOne(src string, size int64) internal.Move {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := internal.Move{Source: src, Size: size, State: internal.StateDuplicatePending}

	name, err := r.namer.UniqueName(r.outputDir, filepath.Base(src))
	if err != nil {
		return r.fail(m, err)
	}
	m.Destination = filepath.Join(r.outputDir, name)

	if r.dryRun {
		r.namer.Reserve(r.outputDir, name)
		m.State = internal.StateDuplicateMoved
		m.Simulated = true
		logger.Get().Debug().Str("source", src).Str("destination", m.Destination).Msg("预览：将移动重复文件")
		return m
	}

	if err := moveFile(r.fs, src, m.Destination); err != nil {
		return r.fail(m, err)
	}

	m.State = internal.StateDuplicateMoved
	logger.Get().Debug().Str("source", src).Str("destination", m.Destination).Msg("已移动重复文件")
	return m
}

func (r *Relocator) fail(m internal.Move, err error) internal.Move {
	m.State = internal.StateDuplicateFailed
	m.Err = &internal.MoveError{Path: m.Source, Err: err}
	logger.Get().Error().Err(err).Str("path", m.Source).Msg("移动文件失败，文件保留在原处")
	return m
}
