package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/moyu-x/dupmover/internal"
)

var (
	cfgFile string
	v       = viper.New()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dupmover",
	Short: "查找内容相同的文件并把多余副本移到隔离目录",
	Long: `dupmover 是一个命令行工具，用于清理存储中的重复文件。

主要功能:
- 遍历目录（可选递归），跳过输出目录本身
- 使用 md5 / sha1 / sha256 / sha512 / xxh64 计算文件摘要
- 摘要相同的文件归为一组，首个发现的文件作为原件保留
- 其余副本移动到输出目录，重名时自动追加 _1、_2 ... 后缀
- 支持预览模式，只报告将要执行的移动`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "配置文件路径（默认查找 "+internal.DefaultConfigPath+"）")
}
