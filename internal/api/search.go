package api

import (
	"net/http"
	"strconv"
	"strings"

	"kiruna-explorer/internal/model"
)

// 文档注释：解析筛选参数
// 背景：keyword/type/scale 为单值；stakeholderNames 可重复出现，也可逗号分隔。
// 约束：size 为 0 且带 pageNo 时按默认页大小分页；pageNo 非法或为负返回 false。
func parseFilter(r *http.Request, size int) (model.Filter, bool) {
	q := r.URL.Query()
	f := model.Filter{
		Keyword: strings.TrimSpace(q.Get("keyword")),
		Type:    strings.TrimSpace(q.Get("type")),
		Scale:   strings.TrimSpace(q.Get("scale")),
	}
	for _, v := range q["stakeholderNames"] {
		for _, name := range strings.Split(v, ",") {
			if name = strings.TrimSpace(name); name != "" {
				f.Stakeholders = append(f.Stakeholders, name)
			}
		}
	}
	if q.Has("pageNo") {
		n, err := strconv.Atoi(q.Get("pageNo"))
		if err != nil || n < 0 {
			return f, false
		}
		f.Page = n
		if size == 0 {
			size = model.PageSize
		}
	}
	f.PageSize = size
	return f, true
}

// searchDocuments：分页搜索，pageNo 从 0 开始
func (s *Server) searchDocuments(w http.ResponseWriter, r *http.Request) {
	f, ok := parseFilter(r, model.PageSize)
	if !ok {
		writeError(w, http.StatusBadRequest, "pageNo must be a non-negative integer")
		return
	}
	docs, total, err := s.st.SearchDocuments(r.Context(), f)
	if err != nil {
		writeStoreError(w, r, "document_search_error", err)
		return
	}
	writeJSON(w, http.StatusOK, model.NewPage(f, total, docs))
}

func (s *Server) stakeholders(w http.ResponseWriter, r *http.Request) {
	names, err := s.st.Stakeholders(r.Context())
	if err != nil {
		writeStoreError(w, r, "stakeholders_list_error", err)
		return
	}
	writeJSON(w, http.StatusOK, names)
}

func (s *Server) scales(w http.ResponseWriter, r *http.Request) {
	scales, err := s.st.Scales(r.Context())
	if err != nil {
		writeStoreError(w, r, "scales_list_error", err)
		return
	}
	writeJSON(w, http.StatusOK, scales)
}
