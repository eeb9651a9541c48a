package namer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// SplitName 在第一个 "." 处拆分文件名：
// "archive.tar.gz" -> ("archive", ".tar.gz")，".gitignore" -> ("", ".gitignore")
func SplitName(name string) (base, ext string) {
	if i := strings.Index(name, "."); i >= 0 {
		return name[:i], name[i:]
	}
	return name, ""
}

// UniqueName 返回 dir 下当前不存在的文件名。
// 检查与随后的创建不是原子操作，同一目录的调用需要由调用方串行化。
func UniqueName(fs afero.Fs, dir, desired string) (string, error) {
	return New(fs).UniqueName(dir, desired)
}

// Namer 在文件系统之外额外记录已预留的名称，
// 预览模式下没有真实写入时也能得到与实际执行一致的结果。
type Namer struct {
	fs       afero.Fs
	reserved map[string]struct{}
}

func New(fs afero.Fs) *Namer {
	return &Namer{fs: fs, reserved: make(map[string]struct{})}
}

// Reserve 标记 dir/name 为已占用
func (n *Namer) Reserve(dir, name string) {
	n.reserved[filepath.Join(dir, name)] = struct{}{}
}

func (n *Namer) taken(dir, name string) (bool, error) {
	path := filepath.Join(dir, name)
	if _, ok := n.reserved[path]; ok {
		return true, nil
	}
	exists, err := afero.Exists(n.fs, path)
	if err != nil {
		return false, fmt.Errorf("检查文件是否存在失败: %w", err)
	}
	return exists, nil
}

func (n *Namer) UniqueName(dir, desired string) (string, error) {
	taken, err := n.taken(dir, desired)
	if err != nil || !taken {
		return desired, err
	}

	base, ext := SplitName(desired)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d%s", base, i, ext)
		taken, err := n.taken(dir, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
