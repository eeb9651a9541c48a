package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/moyu-x/dupmover/app"
	"github.com/moyu-x/dupmover/config"
	"github.com/moyu-x/dupmover/internal"
	"github.com/moyu-x/dupmover/pkg/logger"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup [directory]",
	Short: "检测重复文件并移动到输出目录",
	Long: `遍历指定目录（默认当前目录）中的文件，计算内容摘要并检测重复文件。
每组重复文件保留首个发现的文件，其余文件移动到输出目录。
输出目录为相对路径时相对于扫描目录。`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         runDedup,
}

// flagKeys 命令行参数与配置项的对应关系
var flagKeys = map[string]string{
	"output":    "output.folder",
	"algorithm": "hash.algorithm",
	"recurse":   "scan.recurse",
	"dry-run":   "run.dry_run",
	"workers":   "performance.workers",
	"report":    "report.path",
	"log-level": "logging.level",
}

func runDedup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	logLevel := cfg.Logging.Level
	if verbose {
		logLevel = "debug"
	}
	if err := logger.Init(logLevel, cfg.Logging.File); err != nil {
		return err
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = app.RunDedup(ctx, &app.DedupOptions{
		Root:         root,
		OutputFolder: cfg.Output.Folder,
		Algorithm:    cfg.Hash.Algorithm,
		Recurse:      cfg.Scan.Recurse,
		DryRun:       cfg.Run.DryRun,
		Workers:      cfg.Performance.Workers,
		ReportPath:   cfg.Report.Path,
		Quiet:        quiet,
		Out:          cmd.OutOrStdout(),
	})
	if err != nil {
		logger.Get().Error().Err(err).Msg("运行失败")
	}
	return err
}

func init() {
	dedupCmd.Flags().StringP("output", "o", internal.DefaultOutputFolder, "重复文件的输出目录")
	dedupCmd.Flags().StringP("algorithm", "a", internal.DefaultAlgorithm, "摘要算法: md5, sha1, sha256, sha512, xxh64")
	dedupCmd.Flags().BoolP("recurse", "r", false, "递归扫描子目录")
	dedupCmd.Flags().BoolP("dry-run", "n", false, "预览模式，不实际移动文件")
	dedupCmd.Flags().IntP("workers", "w", 0, "哈希计算并发数（默认: CPU 核数）")
	dedupCmd.Flags().String("report", "", "JSON 报告输出路径")
	dedupCmd.Flags().String("log-level", "info", "日志级别")
	dedupCmd.Flags().BoolP("verbose", "v", false, "显示调试日志")
	dedupCmd.Flags().BoolP("quiet", "q", false, "不显示进度条")

	for flag, key := range flagKeys {
		if err := v.BindPFlag(key, dedupCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	rootCmd.AddCommand(dedupCmd)
}
