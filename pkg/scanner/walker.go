package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupmover/pkg/logger"
)

// FileWalker 遍历目录，只回调普通文件
type FileWalker struct {
	Fs        afero.Fs
	Recursive bool
	// Exclude 需要排除的目录（绝对路径），按路径包含关系判断
	Exclude string
}

func NewFileWalker(fs afero.Fs, recursive bool, exclude string) *FileWalker {
	return &FileWalker{Fs: fs, Recursive: recursive, Exclude: exclude}
}

func (w *FileWalker) Walk(root string, callback func(path string, info os.FileInfo) error) error {
	return afero.Walk(w.Fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logger.Get().Warn().Err(err).Str("path", path).Msg("访问路径出错，已跳过")
			return nil
		}

		if info.IsDir() {
			if path == root {
				return nil
			}
			if IsWithin(path, w.Exclude) {
				logger.Get().Debug().Str("path", path).Msg("跳过输出目录")
				return filepath.SkipDir
			}
			if !w.Recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() {
			logger.Get().Debug().Str("path", path).Str("mode", info.Mode().String()).Msg("跳过非普通文件")
			return nil
		}

		if IsWithin(path, w.Exclude) {
			return nil
		}

		return callback(path, info)
	})
}

// IsWithin 判断 path 是否等于 dir 或位于 dir 之下。
// 使用 filepath.Rel 做路径比较，不做子串或正则匹配。
func IsWithin(path, dir string) bool {
	if dir == "" {
		return false
	}
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
