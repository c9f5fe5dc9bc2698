package validate

import (
	"kiruna-explorer/internal/geo"
	"kiruna-explorer/internal/model"
)

// 文档注释：完整文档校验
// 背景：逐字段运行校验器并收集错误；地理位置子错误以 "geolocation." 前缀平铺。
// 约束：纯函数；返回空表即合法。
func Document(doc model.Document, region geo.Region) Errors {
	errs := Errors{}
	errs.add("title", Title(doc.Title))
	errs.add("stakeholders", Stakeholders(doc.Stakeholders))
	errs.add("scale", Scale(doc.Scale))
	errs.add("issuanceDate", IssuanceDate(doc.IssuanceDate))
	errs.add("type", Type(doc.Type))
	errs.add("language", Language(doc.Language))
	errs.add("nrPages", NrPages(doc.NrPages))
	errs.add("description", Description(doc.Description))
	errs.add("links", Links(doc.ID, doc.Links))
	for k, v := range Geolocation(doc.Geolocation, region) {
		errs["geolocation."+k] = v
	}
	return errs
}

// Merge：合并解码错误与规则错误，解码错误优先
func Merge(decode, rules Errors) Errors {
	out := Errors{}
	for k, v := range rules {
		out[k] = v
	}
	for k, v := range decode {
		out[k] = v
	}
	return out
}
