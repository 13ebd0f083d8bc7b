package interaction

// Index 把字符串 ID 映射为连续的稠密下标。
type Index struct {
	names []string
	pos   map[string]int
}

// NewIndex 创建空索引。
func NewIndex() *Index {
	return &Index{pos: make(map[string]int)}
}

// Add 添加 ID 并返回其下标；已存在时返回原下标。
func (idx *Index) Add(name string) int {
	if i, ok := idx.pos[name]; ok {
		return i
	}
	idx.pos[name] = len(idx.names)
	idx.names = append(idx.names, name)
	return len(idx.names) - 1
}

// Lookup 返回 ID 对应的下标。
func (idx *Index) Lookup(name string) (int, bool) {
	i, ok := idx.pos[name]
	return i, ok
}

// Name 返回下标对应的 ID。
func (idx *Index) Name(i int) string {
	return idx.names[i]
}

// Names 按下标顺序返回全部 ID。
func (idx *Index) Names() []string {
	return append([]string(nil), idx.names...)
}

// Len 返回 ID 数量。
func (idx *Index) Len() int {
	return len(idx.names)
}
