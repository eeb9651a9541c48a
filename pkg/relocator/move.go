package relocator

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/spf13/afero"

	"github.com/moyu-x/dupmover/pkg/logger"
)

// moveFile 先尝试 rename，跨设备时回退为复制后删除
func moveFile(fs afero.Fs, src, dst string) error {
	err := fs.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return err
	}

	logger.Get().Debug().
		Err(err).
		Str("source", src).
		Str("destination", dst).
		Msg("跨设备重命名失败，尝试复制后删除")

	return copyThenRemove(fs, src, dst)
}

func isCrossDevice(err error) bool {
	return errors.Is(err, syscall.EXDEV)
}

// copyThenRemove 复制完成并校验长度后才删除源文件，失败时清理目标文件
func copyThenRemove(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("打开源文件失败: %w", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("读取源文件信息失败: %w", err)
	}

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, info.Mode().Perm())
	if err != nil {
		return fmt.Errorf("创建目标文件失败: %w", err)
	}

	n, err := io.Copy(out, in)
	if err == nil {
		err = out.Sync()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err == nil && n != info.Size() {
		err = fmt.Errorf("复制不完整: %d/%d 字节", n, info.Size())
	}
	if err != nil {
		if rerr := fs.Remove(dst); rerr != nil {
			logger.Get().Warn().Err(rerr).Str("path", dst).Msg("清理未完成的目标文件失败")
		}
		return fmt.Errorf("复制文件内容失败: %w", err)
	}

	if err := fs.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		logger.Get().Debug().Err(err).Str("path", dst).Msg("保留修改时间失败")
	}

	in.Close()
	if err := fs.Remove(src); err != nil {
		return fmt.Errorf("删除原文件失败: %w", err)
	}
	return nil
}
