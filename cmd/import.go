package cmd

import (
	"fmt"

	"github.com/efes-rota/rota-planner/internal/config"
	"github.com/efes-rota/rota-planner/internal/store"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Copy an orders snapshot (--orders) into the redis store (--redis-addr)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if ordersPath == "" || redisAddr == "" {
			return fmt.Errorf("import needs both --orders and --redis-addr")
		}
		ctx := cmd.Context()
		mem, err := store.LoadSnapshotFile(ordersPath)
		if err != nil {
			return err
		}
		redisCfg, err := config.LoadRedisConfig()
		if err != nil {
			return err
		}
		redisCfg.Addr = redisAddr
		client, err := newRedisClient(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		if err := store.NewRedisStore(client).Import(ctx, mem); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s into %s\n", ordersPath, redisAddr)
		return nil
	},
}
