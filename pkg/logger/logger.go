package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger 全局日志实例，Init 之前丢弃所有输出
var Logger = discard()

func discard() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// Init 初始化 zerolog 日志
// level: 日志级别 ("trace", "debug", "info", "warn", "error")
// file: 日志文件路径，为空时仅输出到控制台
func Init(level string, file string) error {
	return InitWithWriter(level, file, os.Stderr)
}

// InitWithWriter 与 Init 相同，但控制台输出写入 out
func InitWithWriter(level string, file string, out io.Writer) error {
	var output io.Writer = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006-01-02 15:04:05"}

	if file != "" {
		// 文件中保留 JSON 格式，方便后续检索
		fileWriter, err := os.OpenFile(file, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return err
		}
		output = zerolog.MultiLevelWriter(output, fileWriter)
	}

	logger := zerolog.New(output).With().Timestamp().Logger().Level(ParseLevel(level))
	Logger = &logger
	return nil
}

// ParseLevel 解析日志级别，无法识别时返回 info
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Get 返回全局 logger 实例
// 如果 logger 未初始化，返回一个默认的 logger（输出到 /dev/null）
func Get() *zerolog.Logger {
	if Logger == nil {
		Logger = discard()
	}
	return Logger
}
