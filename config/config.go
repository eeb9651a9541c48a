package config

import (
	"runtime"
	"strings"

	"github.com/spf13/viper"

	"github.com/moyu-x/dupmover/internal"
)

type Config struct {
	Output struct {
		Folder string `mapstructure:"folder"`
	} `mapstructure:"output"`
	Hash struct {
		Algorithm string `mapstructure:"algorithm"`
	} `mapstructure:"hash"`
	Scan struct {
		Recurse bool `mapstructure:"recurse"`
	} `mapstructure:"scan"`
	Run struct {
		DryRun bool `mapstructure:"dry_run"`
	} `mapstructure:"run"`
	Performance struct {
		Workers int `mapstructure:"workers"`
	} `mapstructure:"performance"`
	Logging struct {
		Level string `mapstructure:"level"`
		File  string `mapstructure:"file"`
	} `mapstructure:"logging"`
	Report struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"report"`
}

// SetDefaults 注册所有配置项的默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("output.folder", internal.DefaultOutputFolder)
	v.SetDefault("hash.algorithm", internal.DefaultAlgorithm)
	v.SetDefault("scan.recurse", false)
	v.SetDefault("run.dry_run", false)
	v.SetDefault("performance.workers", runtime.NumCPU())
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
	v.SetDefault("report.path", "")
}

// Load 读取配置文件。cfgFile 为空时按默认路径查找 config.yaml，找不到文件不算错误。
// 环境变量 DUPMOVER_<KEY>（如 DUPMOVER_HASH_ALGORITHM）会覆盖文件中的值。
func Load(v *viper.Viper, cfgFile string) (*Config, error) {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("$HOME/.dupmover")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/dupmover")
	}

	v.SetEnvPrefix("DUPMOVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
