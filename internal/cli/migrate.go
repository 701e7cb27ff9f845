package cli

import (
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/krishpatel1827/EduSync/pkg/database"
)

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "管理数据库 schema 版本",
	}
	cmd.AddCommand(newMigrateUpCmd(), newMigrateDownCmd(), newMigrateVersionCmd())
	return cmd
}

func newMigrateUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "应用全部未执行的迁移",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			_, sqlDB, err := openDB(cfg, logger)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := database.RunMigrations(sqlDB, logger); err != nil {
				return err
			}
			return printVersion(cmd, sqlDB)
		},
	}
}

func newMigrateDownCmd() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "down",
		Short: "回滚迁移（默认 1 步）",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			_, sqlDB, err := openDB(cfg, logger)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			if err := database.RollbackMigrations(sqlDB, steps, logger); err != nil {
				return err
			}
			return printVersion(cmd, sqlDB)
		},
	}

	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "回滚步数")
	return cmd
}

func newMigrateVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示当前 schema 版本",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			_, sqlDB, err := openDB(cfg, logger)
			if err != nil {
				return err
			}
			defer sqlDB.Close()

			return printVersion(cmd, sqlDB)
		},
	}
}

// printVersion 输出当前 schema 版本；dirty 表示上次迁移中断，需要人工修复
func printVersion(cmd *cobra.Command, sqlDB *sql.DB) error {
	version, dirty, err := database.MigrationVersion(sqlDB)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if dirty {
		fmt.Fprintf(out, "schema version: %d (dirty)\n", version)
		return nil
	}
	fmt.Fprintf(out, "schema version: %d\n", version)
	return nil
}
