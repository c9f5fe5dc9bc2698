package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"kiruna-explorer/internal/model"
)

const (
	minLen         = 2
	maxLen         = 64
	maxDescription = 1000
)

// 文本比例尺：仅接受以下两个字面值
const (
	ScaleText       = "Text"
	ScaleBlueprints = "Blueprint/Material effects"
)

var (
	ratioRe = regexp.MustCompile(`^([1-9][0-9]*):([1-9][0-9]*)$`)
	dateRe  = regexp.MustCompile(`^[0-9]{4}(-[0-9]{2}(-[0-9]{2})?)?$`)
)

func outOfRange(s string) bool {
	n := utf8.RuneCountInString(s)
	return n < minLen || n > maxLen
}

// Title：去空白后非空，长度 2..64
func Title(title string) error {
	t := strings.TrimSpace(title)
	if t == "" {
		return ErrTitleRequired
	}
	if outOfRange(t) {
		return ErrTitleLength
	}
	return nil
}

// 文档注释：利益相关方列表
// 约束：非空；不含空白项；大小写不敏感去重；不得为 "other"；每项 2..64。按此顺序报告第一个失败。
func Stakeholders(list []string) error {
	if len(list) == 0 {
		return ErrStakeholdersRequired
	}
	seen := make(map[string]struct{}, len(list))
	dup := false
	for _, s := range list {
		k := strings.ToLower(strings.TrimSpace(s))
		if k == "" {
			return ErrStakeholdersRequired
		}
		if _, ok := seen[k]; ok {
			dup = true
		}
		seen[k] = struct{}{}
	}
	if dup {
		return ErrStakeholdersDuplicate
	}
	if _, ok := seen["other"]; ok {
		return ErrStakeholderOther
	}
	for _, s := range list {
		if outOfRange(strings.TrimSpace(s)) {
			return ErrStakeholderLength
		}
	}
	return nil
}

// 文档注释：比例尺
// 约束：接受 "Text"、"Blueprint/Material effects" 或 A:B（A、B 为正整数且 A ≤ B）；整体长度 2..64。
func Scale(scale string) error {
	s := strings.TrimSpace(scale)
	if s == "" {
		return ErrScaleRequired
	}
	if outOfRange(s) {
		return ErrScaleLength
	}
	if s == ScaleText || s == ScaleBlueprints {
		return nil
	}
	m := ratioRe.FindStringSubmatch(s)
	if m == nil {
		return ErrScaleFormat
	}
	a, errA := strconv.Atoi(m[1])
	b, errB := strconv.Atoi(m[2])
	if errA != nil || errB != nil {
		return ErrScaleFormat
	}
	if a > b {
		return ErrScaleOrder
	}
	return nil
}

// IssuanceDate：严格匹配 YYYY / YYYY-MM / YYYY-MM-DD，且必须是真实存在的日期
func IssuanceDate(date string) error {
	if !dateRe.MatchString(date) {
		return ErrIssuanceDate
	}
	layout := "2006-01-02"[:len(date)]
	if _, err := time.Parse(layout, date); err != nil {
		return ErrIssuanceDate
	}
	return nil
}

// Type：非空、不是 "Other"、长度 2..64
func Type(typ string) error {
	t := strings.TrimSpace(typ)
	if t == "" {
		return ErrTypeRequired
	}
	if t == model.OtherType {
		return ErrTypeOther
	}
	if outOfRange(t) {
		return ErrTypeLength
	}
	return nil
}

func Language(language *string) error {
	if language == nil {
		return nil
	}
	if outOfRange(strings.TrimSpace(*language)) {
		return ErrLanguageLength
	}
	return nil
}

func NrPages(nrPages *int) error {
	if nrPages != nil && *nrPages < 0 {
		return ErrNrPagesNegative
	}
	return nil
}

func Description(description *string) error {
	if description != nil && utf8.RuneCountInString(*description) > maxDescription {
		return ErrDescriptionLength
	}
	return nil
}

// 文档注释：链接列表
// 约束：类型必须合法；目标 id 为正且不等于自身；同一 (目标, 类型) 只能出现一次。
// 目标是否存在由存储层判定。
func Links(self *int64, links []model.Link) error {
	seen := make(map[model.Link]struct{}, len(links))
	for _, l := range links {
		if !l.LinkType.Valid() {
			return ErrLinkType
		}
		if l.DocumentID <= 0 || (self != nil && *self == l.DocumentID) {
			return ErrLinkTarget
		}
		k := model.Link{DocumentID: l.DocumentID, LinkType: l.LinkType}
		if _, ok := seen[k]; ok {
			return ErrLinkDuplicate
		}
		seen[k] = struct{}{}
	}
	return nil
}
