// Command dinekit 是餐厅推荐引擎的命令行入口。
//
//	dinekit --restaurants data/restaurants.csv --interactions data/interactions.csv \
//	    similar --name "Sakura" --budget 800 --mode delivery
package main

import (
	"context"
	"os"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rushteam/dinekit/config"
	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/engine"
	"github.com/rushteam/dinekit/pkg/log"
	"github.com/rushteam/dinekit/store"
)

var rootCommand = &cobra.Command{
	Use:   "dinekit",
	Short: "Restaurant recommendation engine",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.SetLogger(debug)
	},
	SilenceUsage: true,
}

func init() {
	flags := rootCommand.PersistentFlags()
	flags.String("config", "", "path of the YAML config file")
	flags.String("restaurants", "", "restaurant table (CSV)")
	flags.String("interactions", "", "user interaction table (CSV)")
	flags.String("redis-addr", "", "load tables and blacklist from redis")
	flags.Bool("debug", false, "debug log mode")
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig 读取配置文件，命令行参数覆盖配置中的数据来源。
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if v, _ := cmd.Flags().GetString("restaurants"); v != "" {
		cfg.Data.Restaurants = v
	}
	if v, _ := cmd.Flags().GetString("interactions"); v != "" {
		cfg.Data.Interactions = v
	}
	if v, _ := cmd.Flags().GetString("redis-addr"); v != "" {
		cfg.Data.RedisAddr = v
	}
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		cfg.Debug = true
	}
	return cfg, nil
}

// readTables 读取 CSV 数据表，未配置路径的表返回 nil。
func readTables(cfg *config.Config) ([]core.Restaurant, []core.Interaction, error) {
	var (
		restaurants  []core.Restaurant
		interactions []core.Interaction
	)
	if path := cfg.Data.Restaurants; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		defer f.Close()
		if restaurants, err = store.LoadRestaurantsCSV(f); err != nil {
			return nil, nil, errors.Annotatef(err, "load %s", path)
		}
	}
	if path := cfg.Data.Interactions; path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, nil, errors.Trace(err)
		}
		defer f.Close()
		if interactions, err = store.LoadInteractionsCSV(f); err != nil {
			return nil, nil, errors.Annotatef(err, "load %s", path)
		}
	}
	return restaurants, interactions, nil
}

func openStore(cfg *config.Config) (core.Store, error) {
	if cfg.Data.RedisAddr == "" {
		return nil, nil
	}
	return store.NewRedisStore(cfg.Data.RedisAddr, cfg.Data.RedisDB)
}

// buildEngine 按配置加载数据并构建引擎。
func buildEngine(cmd *cobra.Command) (*engine.Engine, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	restaurants, interactions, err := readTables(cfg)
	if err != nil {
		return nil, nil, err
	}
	s, err := openStore(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if s != nil {
			_ = s.Close()
		}
	}
	if restaurants == nil && s == nil {
		cleanup()
		return nil, nil, errors.New("no data source: set --restaurants or --redis-addr")
	}

	b := engine.NewBuilder(cfg).WithRestaurants(restaurants).WithInteractions(interactions)
	if s != nil {
		b = b.WithStore(s)
	}
	eng, err := b.Build(context.Background())
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return eng, cleanup, nil
}

// fail 输出错误：领域错误直接展示消息，其余错误记录完整堆栈。
func fail(err error) error {
	if de := core.GetDomainError(err); de != nil {
		log.Logger().Error(de.Message, zap.String("code", de.Code), zap.String("module", de.Module))
		return err
	}
	log.Logger().Error("dinekit failed", zap.String("trace", errors.ErrorStack(err)))
	return err
}
