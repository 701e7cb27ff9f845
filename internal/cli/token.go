package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/krishpatel1827/EduSync/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "签发管理端访问令牌",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}

			token, err := jwt.NewManager(&cfg.Auth).GenerateToken(subject, jwt.RoleAdmin, ttl)
			if err != nil {
				return fmt.Errorf("签发令牌失败: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "admin", "令牌主体")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "有效期（默认 auth.access_token_ttl）")
	return cmd
}
