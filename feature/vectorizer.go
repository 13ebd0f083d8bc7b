// Package feature 把餐厅的自由文本属性转换为带权重的稀疏词向量。
package feature

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/rushteam/dinekit/core"
)

// Vector 是稀疏词向量：term -> weight。构建后只读。
type Vector map[string]float64

// Weighting 是词权重方案。
type Weighting int

const (
	// WeightingTF 原始词频，用于自由文本查询与语料匹配。
	WeightingTF Weighting = iota
	// WeightingTFIDF 平滑 idf 加权并做 L2 归一化，用于餐厅之间的相似度。
	WeightingTFIDF
)

func (w Weighting) String() string {
	if w == WeightingTFIDF {
		return "tfidf"
	}
	return "tf"
}

// Vectorizer 在语料上拟合出固定词表，并能把新文本投影到同一空间。
type Vectorizer struct {
	weighting  Weighting
	vocabulary []string
	idf        map[string]float64
	vectors    []Vector
}

// Fit 在文档集合上构建词表与语料向量。
func Fit(docs []string, weighting Weighting) *Vectorizer {
	v := &Vectorizer{weighting: weighting}

	counts := make([]map[string]float64, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		counts[i] = termCounts(Tokenize(doc))
		for term := range counts[i] {
			df[term]++
		}
	}

	v.vocabulary = lo.Keys(df)
	sort.Strings(v.vocabulary)

	if weighting == WeightingTFIDF {
		n := float64(len(docs))
		v.idf = make(map[string]float64, len(df))
		for term, d := range df {
			v.idf[term] = math.Log((1+n)/(1+float64(d))) + 1
		}
	}

	v.vectors = make([]Vector, len(docs))
	for i, c := range counts {
		v.vectors[i] = v.weigh(c)
	}
	return v
}

// FitRestaurants 以选中字段为文档在餐厅列表上拟合。
func FitRestaurants(restaurants []*core.Restaurant, fields Fields, weighting Weighting) *Vectorizer {
	return Fit(fields.Documents(restaurants), weighting)
}

// Transform 把新文本投影到已拟合的词表空间，词表外的词被忽略。
func (v *Vectorizer) Transform(text string) Vector {
	c := termCounts(Tokenize(text))
	for term := range c {
		if !v.known(term) {
			delete(c, term)
		}
	}
	return v.weigh(c)
}

// Vectors 按文档顺序返回语料向量，调用方不得修改。
func (v *Vectorizer) Vectors() []Vector {
	return v.vectors
}

// Vocabulary 返回排序后的词表副本。
func (v *Vectorizer) Vocabulary() []string {
	return append([]string(nil), v.vocabulary...)
}

// Weighting 返回权重方案。
func (v *Vectorizer) Weighting() Weighting {
	return v.weighting
}

func (v *Vectorizer) known(term string) bool {
	i := sort.SearchStrings(v.vocabulary, term)
	return i < len(v.vocabulary) && v.vocabulary[i] == term
}

func (v *Vectorizer) weigh(counts map[string]float64) Vector {
	out := Vector(counts)
	if v.weighting != WeightingTFIDF {
		return out
	}
	var norm float64
	for term, c := range out {
		w := c * v.idf[term]
		out[term] = w
		norm += w * w
	}
	if norm == 0 {
		return out
	}
	norm = math.Sqrt(norm)
	for term := range out {
		out[term] /= norm
	}
	return out
}

func termCounts(tokens []string) map[string]float64 {
	c := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		c[t]++
	}
	return c
}
