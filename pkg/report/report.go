package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/h2non/filetype"
	"github.com/spf13/afero"

	"github.com/moyu-x/dupmover/internal"
)

// FileHeaderSize 文件类型检测所需的文件头部大小（字节）
const FileHeaderSize = 261

// DetectKind 根据文件头判断 MIME 类型，无法识别时返回 unknown
func DetectKind(fs afero.Fs, path string) string {
	f, err := fs.Open(path)
	if err != nil {
		return internal.UnknownKind
	}
	defer f.Close()

	buf := make([]byte, FileHeaderSize)
	n, _ := io.ReadFull(f, buf)
	if n == 0 {
		return internal.UnknownKind
	}

	kind, err := filetype.Match(buf[:n])
	if err != nil || kind == filetype.Unknown {
		return internal.UnknownKind
	}
	return kind.MIME.Value
}

// FormatBytes 以 1024 为基数格式化字节数
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// WriteGroup 输出一个重复组：摘要、类型、原件以及每个重复文件的去向
func WriteGroup(w io.Writer, res internal.GroupResult) {
	kind := res.Kind
	if kind == "" {
		kind = internal.UnknownKind
	}

	fmt.Fprintf(w, "%s %s %s\n",
		titleStyle.Render("重复组"),
		digestStyle.Render(res.Group.Digest),
		hintStyle.Render("("+kind+")"))
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("原件:"), filePathStyle.Render(res.Group.Original().Path))

	for _, m := range res.Moves {
		switch {
		case m.Err != nil:
			fmt.Fprintf(w, "  %s %s\n", errorStyle.Render("失败:"), errorStyle.Render(m.Err.Error()))
		case m.Simulated:
			fmt.Fprintf(w, "  %s %s -> %s\n", hintStyle.Render("[预览]"), m.Source, m.Destination)
		default:
			fmt.Fprintf(w, "  %s %s -> %s\n", labelStyle.Render("移动:"), m.Source, m.Destination)
		}
	}
	fmt.Fprintln(w)
}

// WriteSummary 输出最终统计
func WriteSummary(w io.Writer, s internal.RunSummary) {
	saved := "释放空间"
	if s.DryRun {
		saved = "可释放空间"
	}

	lines := []string{
		titleStyle.Render("处理完成"),
		fmt.Sprintf("%s %d", labelStyle.Render("扫描文件数:"), s.FilesScanned),
		fmt.Sprintf("%s %d", labelStyle.Render("重复文件数:"), s.DuplicatesFound),
		fmt.Sprintf("%s %s", labelStyle.Render(saved+":"), FormatBytes(s.SpaceSavedBytes)),
		fmt.Sprintf("%s %s", labelStyle.Render("输出目录:"), s.OutputLocation),
	}
	if s.HashFailures > 0 || s.MoveFailures > 0 {
		lines = append(lines, errorStyle.Render(fmt.Sprintf("哈希失败: %d  移动失败: %d", s.HashFailures, s.MoveFailures)))
	}
	if s.DryRun {
		lines = append(lines, hintStyle.Render("预览模式，未修改任何文件"))
	}

	fmt.Fprintln(w, statsBoxStyle.Render(strings.Join(lines, "\n")))
}
