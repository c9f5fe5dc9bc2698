package diagram

import (
	"regexp"
	"strconv"
	"strings"
)

// Category：纵轴上的比例尺类别
type Category string

const (
	CategoryTop        Category = " "
	CategoryText       Category = "Text"
	CategoryConcept    Category = "Concept"
	CategoryBlueprints Category = "Blueprints/effects"
	CategoryBottom     Category = ""
)

// numericRows：数值比例尺行，由粗到细
var numericRows = []Category{"1:100000", "1:10000", "1:5000", "1:1000"}

// Rows：纵轴自上而下的全部类别
var Rows = []Category{CategoryTop, CategoryText, CategoryConcept, "1:100000", "1:10000", "1:5000", "1:1000", CategoryBlueprints, CategoryBottom}

var numericRe = regexp.MustCompile(`^1:([0-9]+)$`)

// 文档注释：原始比例尺字符串归入固定类别
// 约束："Blueprint/Material effects" 与 "blueprints/effects"（大小写不敏感）合并为 Blueprints/effects；
// 1:N 保留为数值标签；其余一律回落到 Text。
func NormalizeScaleLabel(scale string) Category {
	s := strings.TrimSpace(scale)
	switch {
	case s == "Blueprint/Material effects", strings.EqualFold(s, string(CategoryBlueprints)):
		return CategoryBlueprints
	case s == string(CategoryText), s == string(CategoryConcept):
		return Category(s)
	}
	if _, ok := ParseNumericScale(s); ok {
		return Category(s)
	}
	return CategoryText
}

// ParseNumericScale：从 1:N 中取出 N（N ≥ 1）
func ParseNumericScale(scale string) (int, bool) {
	m := numericRe.FindStringSubmatch(strings.TrimSpace(scale))
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// linearScale：年份 → 横坐标，定义域外线性外推
type linearScale struct {
	d0, d1 float64
	r0, r1 float64
}

func (s linearScale) at(v float64) float64 {
	if s.d1 == s.d0 {
		return (s.r0 + s.r1) / 2
	}
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// pointScale：离散类别均匀分布，两端各留 padding 个步长
type pointScale struct {
	index map[Category]int
	step  float64
	start float64
}

func newPointScale(domain []Category, extent, padding float64) pointScale {
	n := float64(len(domain))
	span := n - 1 + 2*padding
	if span <= 0 {
		span = 1
	}
	step := extent / span
	idx := make(map[Category]int, len(domain))
	for i, c := range domain {
		idx[c] = i
	}
	return pointScale{index: idx, step: step, start: step * padding}
}

// at：类别对应的纵坐标；未知类别返回 false
func (s pointScale) at(c Category) (float64, bool) {
	i, ok := s.index[c]
	if !ok {
		return 0, false
	}
	return s.start + s.step*float64(i), true
}

func (s pointScale) must(c Category) float64 {
	v, _ := s.at(c)
	return v
}
