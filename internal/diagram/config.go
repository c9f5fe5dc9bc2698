package diagram

// Margins：绘图区四周留白（像素）
type Margins struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// 文档注释：图表固定配置
// 约束：YearMin < YearMax；IconSize 为图标边长，定位时减去一半使图标居中。
type Config struct {
	YearMin    int
	YearMax    int
	Padding    float64 // 类别轴两端留白比例
	IconSize   float64
	LinkOffset float64 // 曲线两端相对图标中心的缩进
	Curvature  float64 // 同源多条链接之间的控制点间距
	Margin     Margins
}

func DefaultConfig() Config {
	return Config{
		YearMin:    2004,
		YearMax:    2026,
		Padding:    0.2,
		IconSize:   30,
		LinkOffset: 18,
		Curvature:  40,
		Margin:     Margins{Top: 50, Right: 50, Bottom: 50, Left: 100},
	}
}

// Viewport：整个画布尺寸；绘图区为扣除边距后的部分
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// plot：绘图区宽高，不足时取 0
func (c Config) plot(vp Viewport) (float64, float64) {
	w := vp.Width - c.Margin.Left - c.Margin.Right
	h := vp.Height - c.Margin.Top - c.Margin.Bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return w, h
}
