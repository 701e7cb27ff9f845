package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
)

// Execute 运行根命令
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "edusync",
		Short:         "EduSync 课表管理命令行工具",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径（默认 ./config/config.yaml）")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "输出调试日志")

	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newTokenCmd())
	cmd.AddCommand(newMigrateCmd())

	return cmd
}
