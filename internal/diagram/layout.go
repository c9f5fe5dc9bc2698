package diagram

import (
	"math/rand/v2"

	"kiruna-explorer/internal/model"
	"kiruna-explorer/internal/style"
)

// Source：布局抖动的随机源，*rand.Rand 满足该接口
type Source interface {
	Float64() float64
}

// NewSeeded：确定性随机源，同一种子得到同一布局
func NewSeeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// newRandom：未指定种子时使用的随机源
func newRandom() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// Position：图标左上角坐标（绘图区坐标系）
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node：已放置的文档
type Node struct {
	Position
	ID       int64     `json:"id"`
	Title    string    `json:"title"`
	Category Category  `json:"category"`
	Tag      style.Tag `json:"style"`
}

// Row 与 Tick：坐标轴刻度，供渲染端绘制网格
type Row struct {
	Label Category `json:"label"`
	Y     float64  `json:"y"`
}

type Tick struct {
	Year int     `json:"year"`
	X    float64 `json:"x"`
}

// Result：一次布局的完整输出
type Result struct {
	Viewport     Viewport       `json:"viewport"`
	Margin       Margins        `json:"margin"`
	Rows         []Row          `json:"rows"`
	Years        []Tick         `json:"years"`
	Positions    map[int64]Node `json:"positions"`
	Links        []Curve        `json:"links"`
	Skipped      int            `json:"skipped"`
	DroppedLinks int            `json:"droppedLinks"`
}

// 文档注释：时间 × 比例尺二维布局
// 背景：横向按发布年份分列，列内随机偏移避免同年文档重叠；纵向按比例尺类别分行，
// 数值比例尺与 Blueprints 在相邻两行之间随机取值。
// 约束：非并发安全；每次请求各建一个 Layout。
type Layout struct {
	cfg    Config
	src    Source
	styles style.Table
	vp     Viewport
	x      linearScale
	y      pointScale
}

// New：src 为 nil 时使用随机种子
func New(cfg Config, vp Viewport, src Source, styles style.Table) *Layout {
	if src == nil {
		src = newRandom()
	}
	l := &Layout{cfg: cfg, src: src, styles: styles}
	l.resize(vp)
	return l
}

func (l *Layout) resize(vp Viewport) {
	w, h := l.cfg.plot(vp)
	l.vp = vp
	l.x = linearScale{d0: float64(l.cfg.YearMin), d1: float64(l.cfg.YearMax), r0: 0, r1: w}
	l.y = newPointScale(Rows, h, l.cfg.Padding)
}

// between：在 [a, b] 区间内按随机源取值
func (l *Layout) between(a, b float64) float64 {
	return a + l.src.Float64()*(b-a)
}

// 文档注释：单个文档的图标位置
// 约束：无 id 或发布年份无法解析时不放置；纵向规则：
// 1:N 且 N ≤ 1000 落在 Blueprints 与 1:1000 两行之间；N 更大时落在包住 N 的相邻两行之间；
// Blueprints 落在底部空行与 Blueprints 行之间；其余类别恰好落在所在行；无法归类的回落到 Text 行。
func (l *Layout) Position(doc model.Document) (Position, bool) {
	year, ok := doc.Year()
	if !ok || !doc.HasID() {
		return Position{}, false
	}
	half := l.cfg.IconSize / 2
	x0, x1 := l.x.at(float64(year)), l.x.at(float64(year+1))
	x := l.between(x0, x1) - half

	return Position{X: x, Y: l.row(doc.Scale) - half}, true
}

func (l *Layout) row(scale string) float64 {
	cat := NormalizeScaleLabel(scale)
	if n, ok := ParseNumericScale(string(cat)); ok {
		if n <= 1000 {
			return l.between(l.y.must(CategoryBlueprints), l.y.must("1:1000"))
		}
		for i := 0; i+1 < len(numericRows); i++ {
			coarser, _ := ParseNumericScale(string(numericRows[i]))
			finer, _ := ParseNumericScale(string(numericRows[i+1]))
			if n > finer && n <= coarser {
				return l.between(l.y.must(numericRows[i+1]), l.y.must(numericRows[i]))
			}
		}
		return l.y.must(CategoryText)
	}
	if cat == CategoryBlueprints {
		return l.between(l.y.must(CategoryBottom), l.y.must(CategoryBlueprints))
	}
	if y, ok := l.y.at(cat); ok {
		return y
	}
	return l.y.must(CategoryText)
}

// 文档注释：完整布局
// 背景：先放置全部文档，再基于已放置的位置生成链接曲线；Skipped 为未能放置的文档数，
// DroppedLinks 为目标未显示而跳过的链接数。
func (l *Layout) Compute(docs []model.Document, vp Viewport) Result {
	if vp != l.vp {
		l.resize(vp)
	}
	res := Result{
		Viewport:  vp,
		Margin:    l.cfg.Margin,
		Positions: make(map[int64]Node, len(docs)),
	}
	for _, c := range Rows {
		res.Rows = append(res.Rows, Row{Label: c, Y: l.y.must(c)})
	}
	for y := l.cfg.YearMin; y <= l.cfg.YearMax; y++ {
		res.Years = append(res.Years, Tick{Year: y, X: l.x.at(float64(y))})
	}

	positions := make(map[int64]Position, len(docs))
	for _, d := range docs {
		p, ok := l.Position(d)
		if !ok {
			res.Skipped++
			continue
		}
		id := d.IDValue()
		positions[id] = p
		res.Positions[id] = Node{
			Position: p,
			ID:       id,
			Title:    d.Title,
			Category: NormalizeScaleLabel(d.Scale),
			Tag:      l.styles.Lookup(d.Type, d.Stakeholders),
		}
	}
	res.Links, res.DroppedLinks = l.links(docs, positions)
	return res
}
