package validate

import (
	"bytes"
	"encoding/json"
	"math"

	"kiruna-explorer/internal/model"
)

// 文档注释：逐字段解码文档 JSON
// 背景：类型不符的字段（如 stakeholders 不是数组、nrPages 不是整数）记为该字段的错误，
// 而不是让整个请求失败；其余字段照常解码，便于一次返回全部问题。
// 约束：顶层不是 JSON 对象时仅返回 "document" 错误。
func Decode(data []byte) (model.Document, Errors) {
	var doc model.Document
	errs := Errors{}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil || raw == nil {
		errs["document"] = "Document must be a JSON object."
		return doc, errs
	}

	if v, ok := present(raw, "id"); ok {
		var id int64
		if json.Unmarshal(v, &id) != nil {
			errs["id"] = "Id must be an integer."
		} else {
			doc.ID = &id
		}
	}
	str(raw, "title", &doc.Title, errs, "Title must be a string.")
	str(raw, "scale", &doc.Scale, errs, "Scale must be a string.")
	str(raw, "issuanceDate", &doc.IssuanceDate, errs, "Issuance date must be a string.")
	str(raw, "type", &doc.Type, errs, "Type must be a string.")
	optStr(raw, "language", &doc.Language, errs, "Language must be a string.")
	optStr(raw, "description", &doc.Description, errs, "Description must be a string.")

	if v, ok := present(raw, "stakeholders"); ok {
		if json.Unmarshal(v, &doc.Stakeholders) != nil {
			errs["stakeholders"] = ErrStakeholdersRequired.Error()
		}
	}

	if v, ok := present(raw, "nrPages"); ok {
		n, good := integer(v)
		if !good {
			errs["nrPages"] = "Number of pages must be an integer."
		} else {
			doc.NrPages = &n
		}
	}

	if v, ok := present(raw, "geolocation"); ok {
		decodeGeolocation(v, &doc.Geolocation, errs)
	}

	if v, ok := present(raw, "links"); ok {
		if json.Unmarshal(v, &doc.Links) != nil {
			errs["links"] = "Links must be a list of {documentId, linkType}."
		}
	}
	return doc, errs
}

func decodeGeolocation(v json.RawMessage, g *model.Geolocation, errs Errors) {
	var raw map[string]json.RawMessage
	if json.Unmarshal(v, &raw) != nil {
		errs["geolocation"] = "Geolocation must be an object."
		return
	}
	coord := func(key string) *float64 {
		c, ok := present(raw, key)
		if !ok {
			return nil
		}
		var f float64
		if json.Unmarshal(c, &f) != nil {
			errs["geolocation."+key] = "Coordinate must be a number."
			return nil
		}
		return &f
	}
	g.Latitude = coord("latitude")
	g.Longitude = coord("longitude")
	if m, ok := present(raw, "municipality"); ok {
		if json.Unmarshal(m, &g.Municipality) != nil {
			errs["geolocation.municipality"] = "Municipality must be a string."
		}
	}
}

// present：字段存在且不为 null
func present(raw map[string]json.RawMessage, key string) (json.RawMessage, bool) {
	v, ok := raw[key]
	if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return nil, false
	}
	return v, true
}

func str(raw map[string]json.RawMessage, key string, dst *string, errs Errors, msg string) {
	if v, ok := present(raw, key); ok && json.Unmarshal(v, dst) != nil {
		errs[key] = msg
	}
}

func optStr(raw map[string]json.RawMessage, key string, dst **string, errs Errors, msg string) {
	v, ok := present(raw, key)
	if !ok {
		return
	}
	var s string
	if json.Unmarshal(v, &s) != nil {
		errs[key] = msg
		return
	}
	*dst = &s
}

// integer：接受 42 与 42.0，拒绝 42.5 与非数字
func integer(v json.RawMessage) (int, bool) {
	var f float64
	if json.Unmarshal(v, &f) != nil {
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
