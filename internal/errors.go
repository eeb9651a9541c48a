package internal

import "fmt"

// SetupError 运行前的准备失败（例如无法创建输出目录），属于致命错误
type SetupError struct {
	Path string
	Err  error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("setup failed for %s: %v", e.Path, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// HashError 单个文件哈希失败，文件被排除在分组之外
type HashError struct {
	Path string
	Err  error
}

func (e *HashError) Error() string {
	return fmt.Sprintf("hash %s: %v", e.Path, e.Err)
}

func (e *HashError) Unwrap() error { return e.Err }

// MoveError 重复文件无法移动，文件保留在原处
type MoveError struct {
	Path string
	Err  error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s: %v", e.Path, e.Err)
}

func (e *MoveError) Unwrap() error { return e.Err }
