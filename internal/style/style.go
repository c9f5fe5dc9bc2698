package style

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tag：文档节点的图标与颜色
type Tag struct {
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// 文档注释：样式查找表
// 背景：启动时构建一次，之后只读；多个请求并发 Lookup 无需加锁。
// 约束：类型未登记时使用默认图标；利益相关方不止一个或未登记时使用默认颜色。
type Table struct {
	icons        map[string]string
	colors       map[string]string
	defaultIcon  string
	defaultColor string
}

// fileConfig：YAML 覆盖文件结构，未出现的键沿用默认值
type fileConfig struct {
	DefaultIcon  string            `yaml:"default_icon"`
	DefaultColor string            `yaml:"default_color"`
	Types        map[string]string `yaml:"types"`
	Stakeholders map[string]string `yaml:"stakeholders"`
}

// Default：内置的文档类型图标与利益相关方配色
func Default() Table {
	return Table{
		icons: map[string]string{
			"Action document":       "bi bi-file-earmark-arrow-down-fill",
			"Agreement document":    "bi bi-hand-thumbs-up-fill",
			"Design document":       "bi bi-house-door-fill",
			"Informative document":  "bi bi-info-circle-fill",
			"Prescriptive document": "bi bi-arrow-right-circle-fill",
			"Technical document":    "bi bi-gear-fill",
		},
		colors: map[string]string{
			"LKAB":               "#191A19",
			"Municipality":       "#755953",
			"Regional authority": "#51232A",
			"Architecture firms": "#A39E8C",
			"Residents":          "#A3C5C1",
		},
		defaultIcon:  "bi bi-file-earmark-text-fill",
		defaultColor: "#7D9593",
	}
}

// Load：在默认表之上叠加 YAML 覆盖；path 为空时直接返回默认表
func Load(path string) (Table, error) {
	t := Default()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("style: read %s: %w", path, err)
	}
	return t.merge(data)
}

func (t Table) merge(data []byte) (Table, error) {
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Table{}, fmt.Errorf("style: parse yaml: %w", err)
	}
	out := Table{
		icons:        clone(t.icons, fc.Types),
		colors:       clone(t.colors, fc.Stakeholders),
		defaultIcon:  t.defaultIcon,
		defaultColor: t.defaultColor,
	}
	if fc.DefaultIcon != "" {
		out.defaultIcon = fc.DefaultIcon
	}
	if fc.DefaultColor != "" {
		out.defaultColor = fc.DefaultColor
	}
	return out, nil
}

func clone(base, over map[string]string) map[string]string {
	m := make(map[string]string, len(base)+len(over))
	for k, v := range base {
		m[k] = v
	}
	for k, v := range over {
		m[k] = v
	}
	return m
}

func (t Table) Lookup(documentType string, stakeholders []string) Tag {
	tag := Tag{Icon: t.defaultIcon, Color: t.defaultColor}
	if icon, ok := t.icons[documentType]; ok {
		tag.Icon = icon
	}
	if len(stakeholders) == 1 {
		if c, ok := t.colors[stakeholders[0]]; ok {
			tag.Color = c
		}
	}
	return tag
}
