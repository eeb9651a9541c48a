package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupmover/internal"
	"github.com/moyu-x/dupmover/pkg/hasher"
	"github.com/moyu-x/dupmover/pkg/logger"
)

// Scanner 枚举根目录下的文件并计算摘要
type Scanner struct {
	Fs        afero.Fs
	Algorithm hasher.Algorithm
	Workers   int

	// OnStart 在开始哈希前调用，参数为待处理文件数
	OnStart func(total int)
	// OnHashed 每个文件哈希完成后调用，需并发安全
	OnHashed func()
}

type ScanResult struct {
	// Records 按扫描顺序排列的成功记录
	Records      []internal.FileRecord
	FilesScanned int
	Failures     []error
}

// Summary 返回扫描阶段的统计
func (r *ScanResult) Summary() internal.RunSummary {
	return internal.RunSummary{
		FilesScanned: r.FilesScanned,
		HashFailures: len(r.Failures),
	}
}

func New(fs afero.Fs, alg hasher.Algorithm, workers int) *Scanner {
	return &Scanner{Fs: fs, Algorithm: alg, Workers: workers}
}

// Scan 扫描 root，排除 exclude 目录。单个文件失败只记录警告。
func (s *Scanner) Scan(ctx context.Context, root string, recursive bool, exclude string) (*ScanResult, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("解析根目录失败: %w", err)
	}
	if exclude != "" {
		if exclude, err = filepath.Abs(exclude); err != nil {
			return nil, fmt.Errorf("解析排除目录失败: %w", err)
		}
	}

	info, err := s.Fs.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("根目录不可用: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("根路径不是目录: %s", root)
	}

	logger.Get().Info().Str("root", root).Bool("recursive", recursive).Msg("开始扫描")

	type candidate struct {
		path string
		size int64
	}
	var candidates []candidate

	walker := NewFileWalker(s.Fs, recursive, exclude)
	err = walker.Walk(root, func(path string, info os.FileInfo) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		candidates = append(candidates, candidate{path: path, size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("遍历目录失败: %w", err)
	}

	if s.OnStart != nil {
		s.OnStart(len(candidates))
	}

	paths := make([]string, len(candidates))
	for i, c := range candidates {
		paths[i] = c.path
	}

	results, err := hasher.NewPool(s.Fs, s.Algorithm, s.Workers).HashAll(ctx, paths, s.OnHashed)
	if err != nil {
		if ctx.Err() != nil {
			logger.Get().Warn().Err(err).Msg("哈希计算已中断")
			return nil, err
		}
		return nil, fmt.Errorf("创建哈希池失败: %w", err)
	}

	res := &ScanResult{FilesScanned: len(candidates)}
	for i, r := range results {
		if r.Err != nil {
			logger.Get().Warn().Err(r.Err).Str("path", r.Path).Msg("计算哈希失败，已跳过")
			res.Failures = append(res.Failures, r.Err)
			continue
		}
		res.Records = append(res.Records, internal.FileRecord{
			Path:   r.Path,
			Size:   candidates[i].size,
			Digest: r.Digest,
		})
	}

	logger.Get().Info().
		Int("scanned", res.FilesScanned).
		Int("hashed", len(res.Records)).
		Int("failed", len(res.Failures)).
		Msg("扫描完成")

	return res, nil
}
