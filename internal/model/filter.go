package model

import (
	"slices"
	"strconv"
	"strings"
)

// 搜索结果每页条数
const PageSize = 16

// 文档注释：文档筛选条件
// 背景：列表页与图表都只展示筛选后的文档集合；空字段表示不限制。
// 约束：Keyword 按标题大小写无关子串匹配；Stakeholders 命中任一即可；Type、Scale 精确匹配。
// PageSize ≤ 0 表示不分页。
type Filter struct {
	Keyword      string
	Type         string
	Stakeholders []string
	Scale        string
	Page         int
	PageSize     int
}

// IsZero：没有任何筛选条件（分页参数不计）
func (f Filter) IsZero() bool {
	return f.Keyword == "" && f.Type == "" && len(f.Stakeholders) == 0 && f.Scale == ""
}

func (f Filter) Match(d Document) bool {
	if f.Keyword != "" && !strings.Contains(strings.ToLower(d.Title), strings.ToLower(f.Keyword)) {
		return false
	}
	if f.Type != "" && d.Type != f.Type {
		return false
	}
	if f.Scale != "" && d.Scale != f.Scale {
		return false
	}
	if len(f.Stakeholders) > 0 && !slices.ContainsFunc(d.Stakeholders, func(s string) bool {
		return slices.Contains(f.Stakeholders, s)
	}) {
		return false
	}
	return true
}

// Key：稳定的字符串形式，用于缓存键
func (f Filter) Key() string {
	names := slices.Clone(f.Stakeholders)
	slices.Sort(names)
	return strings.Join([]string{
		f.Keyword, f.Type, strings.Join(names, ","), f.Scale,
		strconv.Itoa(f.Page), strconv.Itoa(f.PageSize),
	}, "|")
}

// Offset：分页起点
func (f Filter) Offset() int {
	if f.PageSize <= 0 || f.Page <= 0 {
		return 0
	}
	return f.Page * f.PageSize
}

// Page：一页搜索结果；TotalItems 为全部命中数
type Page struct {
	TotalPages  int        `json:"totalPages"`
	CurrentPage int        `json:"currentPage"`
	TotalItems  int        `json:"totalItems"`
	Documents   []Document `json:"documents"`
}

// NewPage：由命中总数与当页文档组装分页结果
func NewPage(f Filter, total int, docs []Document) Page {
	if docs == nil {
		docs = []Document{}
	}
	pages := 1
	if f.PageSize > 0 {
		pages = (total + f.PageSize - 1) / f.PageSize
	}
	return Page{TotalPages: pages, CurrentPage: f.Page, TotalItems: total, Documents: docs}
}
