package core

// RecallConfig 是召回 / 排序相关的默认值接口。
type RecallConfig interface {
	// DefaultTopN 返回默认的结果条数
	DefaultTopN() int

	// DefaultShortlistSize 返回混合推荐第一阶段的候选数 M
	DefaultShortlistSize() int

	// DefaultFactorRank 返回矩阵分解的隐因子维度 k
	DefaultFactorRank() int
}

// DefaultRecallConfig 是默认的召回配置实现。
type DefaultRecallConfig struct{}

func (c *DefaultRecallConfig) DefaultTopN() int {
	return 5
}

func (c *DefaultRecallConfig) DefaultShortlistSize() int {
	return 10
}

func (c *DefaultRecallConfig) DefaultFactorRank() int {
	return 20
}
