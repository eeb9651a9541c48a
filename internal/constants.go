package internal

const (
	// 默认输出目录（相对扫描目录）
	DefaultOutputFolder = "duplicated"

	// 默认哈希算法
	DefaultAlgorithm = "sha256"

	// 配置文件默认路径
	DefaultConfigPath = "~/.dupmover/config.yaml"

	// 哈希读取缓冲区大小
	DefaultBufferSize = 32 * 1024

	// 未能识别的文件类型
	UnknownKind = "unknown"
)
