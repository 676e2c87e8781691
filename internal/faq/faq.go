package faq

import (
	"strings"
)

// Table FAQ 查询表
// 对数据集做大小写不敏感的精确/包含匹配，不做模糊排序
type Table struct {
	entries []Entry
	// normalized[i] 与 entries[i] 一一对应
	normalized []string
}

// NewTable 创建内置数据集的查询表
func NewTable() *Table {
	return NewTableWith(dataset)
}

// NewTableWith 创建指定条目的查询表（测试用）
func NewTableWith(entries []Entry) *Table {
	normalized := make([]string, len(entries))
	for i, e := range entries {
		normalized[i] = Normalize(e.Question)
	}
	return &Table{
		entries:    entries,
		normalized: normalized,
	}
}

// Normalize 归一化问题文本：小写 + 去首尾空白
func Normalize(question string) string {
	return strings.ToLower(strings.TrimSpace(question))
}

// Lookup 在数据集中查找答案
// 优先精确匹配；否则做双向包含匹配，命中多个时取声明顺序的第一个
func (t *Table) Lookup(question string) (string, bool) {
	normalized := Normalize(question)
	if normalized == "" {
		return "", false
	}

	// 精确匹配
	for i, q := range t.normalized {
		if q == normalized {
			return t.entries[i].Answer, true
		}
	}

	// 包含匹配（数据集问题包含输入，或输入包含数据集问题）
	for i, q := range t.normalized {
		if strings.Contains(q, normalized) || strings.Contains(normalized, q) {
			return t.entries[i].Answer, true
		}
	}

	return "", false
}

// Len 数据集条目数
func (t *Table) Len() int {
	return len(t.entries)
}
