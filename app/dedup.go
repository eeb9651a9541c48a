package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupmover/internal"
	"github.com/moyu-x/dupmover/pkg/grouper"
	"github.com/moyu-x/dupmover/pkg/hasher"
	"github.com/moyu-x/dupmover/pkg/logger"
	"github.com/moyu-x/dupmover/pkg/relocator"
	"github.com/moyu-x/dupmover/pkg/report"
	"github.com/moyu-x/dupmover/pkg/scanner"
)

type DedupOptions struct {
	Root string
	// OutputFolder 为相对路径时相对于 Root
	OutputFolder string
	Algorithm    string
	Recurse      bool
	DryRun       bool
	Workers      int
	ReportPath   string
	Quiet        bool

	// Fs 为空时使用 afero.NewOsFs()
	Fs afero.Fs
	// Out 报告输出位置，为空时使用 os.Stdout
	Out io.Writer
}

type DedupResult struct {
	Summary internal.RunSummary
	Groups  []internal.GroupResult
}

// RunDedup 执行一次完整的去重：准备输出目录、扫描、分组、移动并输出报告。
// 只有准备阶段的错误（参数无效、输出目录无法创建、根目录不可用）会返回错误。
func RunDedup(ctx context.Context, opts *DedupOptions) (*DedupResult, error) {
	start := time.Now()

	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	alg, err := hasher.ParseAlgorithm(opts.Algorithm)
	if err != nil {
		return nil, err
	}

	root := opts.Root
	if root == "" {
		root = "."
	}
	if root, err = filepath.Abs(root); err != nil {
		return nil, fmt.Errorf("解析根目录失败: %w", err)
	}
	// 根目录须在创建输出目录之前校验
	info, err := fs.Stat(root)
	if err != nil {
		return nil, &internal.SetupError{Path: root, Err: fmt.Errorf("根目录不可用: %w", err)}
	}
	if !info.IsDir() {
		return nil, &internal.SetupError{Path: root, Err: errors.New("根路径不是目录")}
	}

	outputDir, err := resolveOutput(root, opts.OutputFolder)
	if err != nil {
		return nil, &internal.SetupError{Path: opts.OutputFolder, Err: err}
	}

	logger.Get().Info().
		Str("root", root).
		Str("output", outputDir).
		Str("algorithm", string(alg)).
		Bool("recurse", opts.Recurse).
		Bool("dry_run", opts.DryRun).
		Msg("开始处理")

	if opts.DryRun {
		logger.Get().Info().Msg("=== 预览模式，不会实际修改文件 ===")
	} else if err := fs.MkdirAll(outputDir, 0755); err != nil {
		return nil, &internal.SetupError{Path: outputDir, Err: err}
	}

	sc := scanner.New(fs, alg, opts.Workers)
	var bar *progressbar.ProgressBar
	if !opts.Quiet {
		sc.OnStart = func(total int) {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionSetDescription("计算哈希"),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}
		sc.OnHashed = func() { _ = bar.Add(1) }
	}

	scan, err := sc.Scan(ctx, root, opts.Recurse, outputDir)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		return nil, err
	}

	groups := grouper.Group(scan.Records)
	logger.Get().Info().Int("groups", len(groups)).Msg("分组完成")

	rel := relocator.New(fs, outputDir, opts.DryRun)
	rel.OnGroup = func(res *internal.GroupResult) {
		res.Kind = report.DetectKind(fs, res.Group.Original().Path)
		report.WriteGroup(out, *res)
	}
	results, moved := rel.RelocateAll(ctx, groups)

	summary := scan.Summary().Merge(moved)
	summary.OutputLocation = outputDir
	summary.DryRun = opts.DryRun
	summary.Duration = time.Since(start)

	if len(groups) == 0 {
		fmt.Fprintln(out, "未发现重复文件")
	}
	report.WriteSummary(out, summary)

	if opts.ReportPath != "" {
		doc := report.NewDocument(root, string(alg), start, results, summary)
		if err := report.WriteJSON(fs, opts.ReportPath, doc); err != nil {
			logger.Get().Error().Err(err).Str("path", opts.ReportPath).Msg("写入报告失败")
		} else {
			logger.Get().Info().Str("path", opts.ReportPath).Msg("报告已写入")
		}
	}

	return &DedupResult{Summary: summary, Groups: results}, nil
}

func resolveOutput(root, folder string) (string, error) {
	if folder == "" {
		folder = internal.DefaultOutputFolder
	}
	if filepath.IsAbs(folder) {
		return filepath.Clean(folder), nil
	}
	return filepath.Abs(filepath.Join(root, folder))
}
