// Package dinekit 是一个餐厅推荐引擎。
//
// 设计要点：
// - Pipeline-first: 每种查询模式都组装为 Node 链（Recall → Filter → Rank → ReRank）
// - Build-then-freeze: engine.Builder 一次性构建目录、内容索引与评分模型，之后只读
// - Labels-first: labels 全链路透传与标准化 merge，支持 explain / 观测
//
// 查询模式：knowledge-filter、content-query、content-to-restaurant、
// matrix-factorization、hybrid、neighborhood-collaborative，详见 engine 包。
package dinekit

import (
	"github.com/rushteam/dinekit/engine"
	"github.com/rushteam/dinekit/pipeline"
)

// 轻量 facade：便于用户直接 import "dinekit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

type Engine = engine.Engine
type Query = engine.Query
type Result = engine.Result

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindRank   = pipeline.KindRank
	KindReRank = pipeline.KindReRank
)
