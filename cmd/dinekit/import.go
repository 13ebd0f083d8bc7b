package main

import (
	"context"
	"encoding/json"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rushteam/dinekit/pkg/log"
	"github.com/rushteam/dinekit/store"
)

func init() {
	importCommand.Flags().StringSlice("blacklist", nil, "restaurant ids excluded from every recommendation")
	rootCommand.AddCommand(importCommand)
}

var importCommand = &cobra.Command{
	Use:   "import",
	Short: "Import CSV tables into redis so other processes share the same data",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fail(err)
		}
		if cfg.Data.RedisAddr == "" || cfg.Data.Restaurants == "" {
			return fail(errors.New("import requires --redis-addr and --restaurants"))
		}
		restaurants, interactions, err := readTables(cfg)
		if err != nil {
			return fail(err)
		}
		s, err := openStore(cfg)
		if err != nil {
			return fail(err)
		}
		defer s.Close()

		ctx := context.Background()
		src := store.NewTableSource(s, cfg.Data.RedisPrefix)
		if err := src.Save(ctx, restaurants, interactions); err != nil {
			return fail(err)
		}
		if ids, _ := cmd.Flags().GetStringSlice("blacklist"); len(ids) > 0 {
			key := cfg.Data.BlacklistKey
			if key == "" {
				key = cfg.Data.RedisPrefix + ":blacklist"
			}
			data, err := json.Marshal(ids)
			if err != nil {
				return fail(errors.Trace(err))
			}
			if err := s.Set(ctx, key, data); err != nil {
				return fail(errors.Annotatef(err, "save blacklist %s", key))
			}
		}
		log.Logger().Info("tables imported",
			zap.String("restaurants_key", src.RestaurantsKey()),
			zap.Int("restaurants", len(restaurants)),
			zap.Int("interactions", len(interactions)))
		return nil
	},
}
