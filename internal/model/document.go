package model

import (
	"strconv"
	"strings"
)

// LinkType：文档间关系类型
type LinkType string

const (
	LinkDirectConsequence     LinkType = "DIRECT_CONSEQUENCE"
	LinkCollateralConsequence LinkType = "COLLATERAL_CONSEQUENCE"
	LinkPrevision             LinkType = "PREVISION"
	LinkUpdate                LinkType = "UPDATE"
)

// LinkTypes 按展示顺序列出全部关系类型
var LinkTypes = []LinkType{LinkDirectConsequence, LinkCollateralConsequence, LinkPrevision, LinkUpdate}

func (t LinkType) Valid() bool {
	switch t {
	case LinkDirectConsequence, LinkCollateralConsequence, LinkPrevision, LinkUpdate:
		return true
	}
	return false
}

// EntireMunicipality：地理位置为整个市镇时的哨兵值
const EntireMunicipality = "Entire municipality"

// OtherType：表单中“其他”类型的哨兵值，提交前必须替换为具体类型
const OtherType = "Other"

// Link：有序链接项；ID 为存储侧链接主键，未入库时为 0
type Link struct {
	ID         int64    `json:"id,omitempty"`
	DocumentID int64    `json:"documentId"`
	LinkType   LinkType `json:"linkType"`
}

// Geolocation：点位或整个市镇二选一，也可为空
type Geolocation struct {
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	Municipality string   `json:"municipality,omitempty"`
}

// HasPoint：经纬度均存在
func (g Geolocation) HasPoint() bool { return g.Latitude != nil && g.Longitude != nil }

// IsEntireMunicipality：是否为整个市镇
func (g Geolocation) IsEntireMunicipality() bool { return g.Municipality == EntireMunicipality }

// 文档注释：规划文档记录
// 背景：既是表单校验的输入，也是图表布局与存储层的载体；ID 为 nil 表示尚未入库。
type Document struct {
	ID           *int64      `json:"id"`
	Title        string      `json:"title"`
	Stakeholders []string    `json:"stakeholders"`
	Scale        string      `json:"scale"`
	IssuanceDate string      `json:"issuanceDate"`
	Type         string      `json:"type"`
	Language     *string     `json:"language,omitempty"`
	NrPages      *int        `json:"nrPages,omitempty"`
	Geolocation  Geolocation `json:"geolocation"`
	Description  *string     `json:"description,omitempty"`
	Links        []Link      `json:"links,omitempty"`
}

// DatePrecision：发布日期粒度
type DatePrecision string

const (
	YearOnly  DatePrecision = "YEAR_ONLY"
	MonthYear DatePrecision = "MONTH_YEAR"
	FullDate  DatePrecision = "FULL_DATE"
)

// DatePrecision 按日期串长度推断粒度；格式是否合法由校验器负责
func (d Document) DatePrecision() DatePrecision {
	switch len(d.IssuanceDate) {
	case 4:
		return YearOnly
	case 7:
		return MonthYear
	default:
		return FullDate
	}
}

// IssuanceDay：补齐为具体日期，YYYY → YYYY-01-01，YYYY-MM → YYYY-MM-01
func (d Document) IssuanceDay() string {
	switch d.DatePrecision() {
	case YearOnly:
		return d.IssuanceDate + "-01-01"
	case MonthYear:
		return d.IssuanceDate + "-01"
	}
	return d.IssuanceDate
}

// Year：发布年份；无法解析时返回 false
func (d Document) Year() (int, bool) {
	if len(d.IssuanceDate) < 4 {
		return 0, false
	}
	y, err := strconv.Atoi(d.IssuanceDate[:4])
	if err != nil || y <= 0 {
		return 0, false
	}
	return y, true
}

// HasID 与 IDValue：图表与存储层只处理已入库文档
func (d Document) HasID() bool { return d.ID != nil }

func (d Document) IDValue() int64 {
	if d.ID == nil {
		return 0
	}
	return *d.ID
}

// Form：界面原始输入；日期拆为年/月/日三段，类型可为“其他”加自定义值
type Form struct {
	Title         string   `json:"title"`
	Stakeholders  []string `json:"stakeholders"`
	Scale         string   `json:"scale"`
	IssuanceYear  string   `json:"issuanceYear"`
	IssuanceMonth string   `json:"issuanceMonth"`
	IssuanceDay   string   `json:"issuanceDay"`
	Type          string   `json:"type"`
	CustomType    string   `json:"customType"`
	Language      string   `json:"language"`
	NrPages       *int     `json:"nrPages"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Municipality  string   `json:"municipality"`
	Description   string   `json:"description"`
	Links         []Link   `json:"links"`
}

// 文档注释：表单归一化为 Document
// 约束：只做整形（去空白、拼接日期、替换“其他”类型、空串转 nil），不做任何规则判定；
// 自定义类型为空时保留 "Other"，由校验器报错。
func (f Form) Normalize() Document {
	d := Document{
		Title:        strings.TrimSpace(f.Title),
		Scale:        strings.TrimSpace(f.Scale),
		IssuanceDate: joinDate(f.IssuanceYear, f.IssuanceMonth, f.IssuanceDay),
		Type:         strings.TrimSpace(f.Type),
		NrPages:      f.NrPages,
		Geolocation: Geolocation{
			Latitude:     f.Latitude,
			Longitude:    f.Longitude,
			Municipality: strings.TrimSpace(f.Municipality),
		},
		Links: f.Links,
	}
	for _, s := range f.Stakeholders {
		d.Stakeholders = append(d.Stakeholders, strings.TrimSpace(s))
	}
	if d.Type == OtherType {
		if ct := strings.TrimSpace(f.CustomType); ct != "" {
			d.Type = ct
		}
	}
	if l := strings.TrimSpace(f.Language); l != "" {
		d.Language = &l
	}
	if desc := strings.TrimSpace(f.Description); desc != "" {
		d.Description = &desc
	}
	return d
}

// 年/月/日按出现顺序以 '-' 连接；月为空时忽略日
func joinDate(year, month, day string) string {
	year, month, day = strings.TrimSpace(year), strings.TrimSpace(month), strings.TrimSpace(day)
	out := year
	if month == "" {
		return out
	}
	out += "-" + pad2(month)
	if day != "" {
		out += "-" + pad2(day)
	}
	return out
}

func pad2(s string) string {
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return "0" + s
	}
	return s
}
