package pipeline

import (
	"fmt"
)

// NodeConfig 是单个 Node 的配置（来自 YAML）。
type NodeConfig struct {
	Type   string         `yaml:"type" json:"type"`     // filter.expr / filter.blacklist / rerank.topn 等
	Config map[string]any `yaml:"config" json:"config"` // Node 特定配置
}

// NodeBuilder 根据配置构建 Node。
type NodeBuilder func(map[string]any) (Node, error)

// NodeFactory 用于根据配置构建 Node 实例。
type NodeFactory struct {
	builders map[string]NodeBuilder
}

func NewNodeFactory() *NodeFactory {
	return &NodeFactory{
		builders: make(map[string]NodeBuilder),
	}
}

// Register 注册 Node 构建器。
func (f *NodeFactory) Register(nodeType string, builder NodeBuilder) {
	f.builders[nodeType] = builder
}

// Build 根据类型和配置构建 Node。
func (f *NodeFactory) Build(nodeType string, config map[string]any) (Node, error) {
	builder, ok := f.builders[nodeType]
	if !ok {
		return nil, fmt.Errorf("unknown node type: %s", nodeType)
	}
	return builder(config)
}

// BuildNodes 按顺序构建一组 Node。
func (f *NodeFactory) BuildNodes(configs []NodeConfig) ([]Node, error) {
	nodes := make([]Node, 0, len(configs))
	for _, nc := range configs {
		node, err := f.Build(nc.Type, nc.Config)
		if err != nil {
			return nil, fmt.Errorf("build node %s: %w", nc.Type, err)
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}
