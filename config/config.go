package config

import (
	"os"
	"runtime"

	"github.com/juju/errors"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pipeline"
	"github.com/rushteam/dinekit/pkg/validate"
	"github.com/rushteam/dinekit/recall"
)

// Config 是推荐引擎的整体配置，通常从 YAML 文件加载：
//
//	top_n: 5
//	shortlist_size: 10
//	mf:
//	  method: als
//	  rank: 8
//	data:
//	  restaurants: data/restaurants.csv
//	  interactions: data/interactions.csv
//	filters:
//	  - type: filter.expr
//	    config:
//	      expr: "restaurant.home_delivery"
type Config struct {
	TopN          int `yaml:"top_n" validate:"gte=1"`
	ShortlistSize int `yaml:"shortlist_size" validate:"gte=1"`

	// ContentCandidates > 0 时，content-query 在位置排序前只保留内容相似度前 K 的餐厅
	ContentCandidates int `yaml:"content_candidates" validate:"gte=0"`

	// Jobs 计算相似度矩阵时的并发数
	Jobs int `yaml:"jobs" validate:"gte=1"`

	// CFNeighbors 协同过滤只使用最相似的 K 个邻居，0 表示所有正相似度用户
	CFNeighbors int `yaml:"cf_neighbors" validate:"gte=0"`

	MF recall.MFConfig `yaml:"mf"`

	Data DataConfig `yaml:"data"`

	// Filters 追加到每种模式过滤阶段的配置化 Node
	Filters []pipeline.NodeConfig `yaml:"filters" validate:"dive"`

	Debug bool `yaml:"debug"`
}

// DataConfig 描述数据来源：CSV 文件或 Redis。
type DataConfig struct {
	Restaurants  string `yaml:"restaurants"`
	Interactions string `yaml:"interactions"`

	RedisAddr   string `yaml:"redis_addr"`
	RedisDB     int    `yaml:"redis_db" validate:"gte=0"`
	RedisPrefix string `yaml:"redis_prefix"`

	// BlacklistKey 是 Store 中黑名单餐厅 ID（JSON 数组）的 key，所有模式生效
	BlacklistKey string `yaml:"blacklist_key"`
}

// Default 返回默认配置。
func Default() *Config {
	defaults := &core.DefaultRecallConfig{}
	return &Config{
		TopN:          defaults.DefaultTopN(),
		ShortlistSize: defaults.DefaultShortlistSize(),
		Jobs:          runtime.NumCPU(),
		MF: recall.MFConfig{
			Method: recall.MethodSVD,
			Rank:   defaults.DefaultFactorRank(),
			Seed:   42,
			Epochs: 15,
			Reg:    0.1,
		},
		Data: DataConfig{RedisPrefix: "dinekit"},
	}
}

// Load 从 YAML 文件加载配置，未出现的字段保留默认值。
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Annotatef(err, "read config %s", path)
	}
	return Parse(data)
}

// Parse 解析 YAML 配置并校验。
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Annotate(err, "parse config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置取值以及 filters 中的 Node 类型均已注册。
func (c *Config) Validate() error {
	if err := validate.Struct(core.ModuleEngine, c); err != nil {
		return err
	}
	return ValidateNodeConfigs(c.Filters)
}

func (c *Config) DefaultTopN() int          { return c.TopN }
func (c *Config) DefaultShortlistSize() int { return c.ShortlistSize }
func (c *Config) DefaultFactorRank() int    { return c.MF.Rank }

var _ core.RecallConfig = (*Config)(nil)
