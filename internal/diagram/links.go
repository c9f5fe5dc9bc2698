package diagram

import (
	"math"
	"strconv"
	"strings"

	"kiruna-explorer/internal/model"
)

// LineStyle：链接线型
type LineStyle string

const (
	Solid   LineStyle = "solid"
	Dashed  LineStyle = "dashed"
	Dotted  LineStyle = "dotted"
	DashDot LineStyle = "dash-dot"
)

var dashArrays = map[LineStyle]string{
	Solid:   "",
	Dashed:  "6,4",
	Dotted:  "2,4",
	DashDot: "8,4,2,4",
}

// StyleFor：线型只由链接类型决定，未知类型为实线
func StyleFor(t model.LinkType) LineStyle {
	switch t {
	case model.LinkCollateralConsequence:
		return Dashed
	case model.LinkPrevision:
		return Dotted
	case model.LinkUpdate:
		return DashDot
	}
	return Solid
}

// Point：绘图区坐标
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Curve：二次贝塞尔连线，Path 可直接作为 SVG path 的 d 属性
type Curve struct {
	Source    int64          `json:"source"`
	Target    int64          `json:"target"`
	Type      model.LinkType `json:"linkType"`
	From      Point          `json:"from"`
	Control   Point          `json:"control"`
	To        Point          `json:"to"`
	Style     LineStyle      `json:"style"`
	DashArray string         `json:"dashArray,omitempty"`
	Path      string         `json:"path"`
}

// LinkKey：无向去重键 min:max:type
func LinkKey(a, b int64, t model.LinkType) string {
	if a > b {
		a, b = b, a
	}
	return strconv.FormatInt(a, 10) + ":" + strconv.FormatInt(b, 10) + ":" + string(t)
}

// Links：基于已放置位置生成去重后的连线
func (l *Layout) Links(docs []model.Document, positions map[int64]Position) []Curve {
	curves, _ := l.links(docs, positions)
	return curves
}

// 文档注释：连线生成
// 约束：目标未显示或指向自身的链接跳过；同一无向对 + 类型只画一次；
// 控制点偏移 curvature·(index − (total−1)/2)，index/total 按源文档可显示链接的列表顺序计数，
// 因此同源多条链接围绕直线对称展开。
func (l *Layout) links(docs []model.Document, positions map[int64]Position) ([]Curve, int) {
	seen := make(map[string]struct{})
	var out []Curve
	dropped := 0
	for _, d := range docs {
		if !d.HasID() {
			continue
		}
		src := d.IDValue()
		sp, ok := positions[src]
		if !ok {
			continue
		}
		var shown []model.Link
		for _, lk := range d.Links {
			if lk.DocumentID == src {
				continue
			}
			if _, ok := positions[lk.DocumentID]; !ok {
				dropped++
				continue
			}
			shown = append(shown, lk)
		}
		total := len(shown)
		for i, lk := range shown {
			key := LinkKey(src, lk.DocumentID, lk.LinkType)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			k := l.cfg.Curvature * (float64(i) - float64(total-1)/2)
			out = append(out, l.curve(src, lk, sp, positions[lk.DocumentID], k))
		}
	}
	return out, dropped
}

func (l *Layout) curve(src int64, lk model.Link, a, b Position, bend float64) Curve {
	half := l.cfg.IconSize / 2
	s := Point{X: a.X + half, Y: a.Y + half}
	t := Point{X: b.X + half, Y: b.Y + half}

	dx, dy := t.X-s.X, t.Y-s.Y
	dist := math.Hypot(dx, dy)
	var ux, uy float64
	if dist > 0 {
		ux, uy = dx/dist, dy/dist
	}
	// 两图标过近时不缩进，避免端点交叉
	if dist > 2*l.cfg.LinkOffset {
		s = Point{X: s.X + ux*l.cfg.LinkOffset, Y: s.Y + uy*l.cfg.LinkOffset}
		t = Point{X: t.X - ux*l.cfg.LinkOffset, Y: t.Y - uy*l.cfg.LinkOffset}
	}
	mid := Point{X: (s.X + t.X) / 2, Y: (s.Y + t.Y) / 2}
	ctrl := Point{X: mid.X - uy*bend, Y: mid.Y + ux*bend}

	st := StyleFor(lk.LinkType)
	return Curve{
		Source:    src,
		Target:    lk.DocumentID,
		Type:      lk.LinkType,
		From:      s,
		Control:   ctrl,
		To:        t,
		Style:     st,
		DashArray: dashArrays[st],
		Path:      svgPath(s, ctrl, t),
	}
}

func svgPath(s, c, t Point) string {
	var b strings.Builder
	b.WriteString("M ")
	b.WriteString(num(s.X) + " " + num(s.Y))
	b.WriteString(" Q ")
	b.WriteString(num(c.X) + " " + num(c.Y) + " " + num(t.X) + " " + num(t.Y))
	return b.String()
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
