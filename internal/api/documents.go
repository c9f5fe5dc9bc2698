package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/sync/errgroup"

	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/metrics"
	"kiruna-explorer/internal/model"
	"kiruna-explorer/internal/validate"
)

// 链接目标并发检查的上限
const existsConcurrency = 8

var errLinkTargetMissing = errors.New("link target missing")

// check：解码并校验请求体；解码错误优先于规则错误
// 约束：请求体中的 id 被 self 覆盖（新增时为 nil），链接校验据此拒绝自链接
func (s *Server) check(w http.ResponseWriter, r *http.Request, self *int64) (model.Document, validate.Errors, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		return model.Document{}, nil, err
	}
	doc, decodeErrs := validate.Decode(body)
	doc.ID = self
	errs := validate.Merge(decodeErrs, validate.Document(doc, s.region()))
	for field := range errs {
		metrics.ValidationRejectionsTotal.WithLabelValues(field).Inc()
	}
	return doc, errs, nil
}

// validateDocument：只校验不入库
func (s *Server) validateDocument(w http.ResponseWriter, r *http.Request) {
	_, errs, err := s.check(w, r, nil)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large or unreadable")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"valid": errs.Valid(), "errors": errs})
}

// 文档注释：新增文档
// 背景：字段校验通过后再并发确认所有链接目标存在，最后一次事务写入；任何一步失败都不落库。
// 约束：校验失败 422 {errors}；成功 201 {id}。请求体中的 id 被忽略。
func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	doc, errs, err := s.check(w, r, nil)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large or unreadable")
		return
	}
	if !s.acceptable(w, r, doc, errs) {
		return
	}
	id, err := s.st.InsertDocument(r.Context(), doc)
	if err != nil {
		writeStoreError(w, r, "document_insert_error", err)
		return
	}
	metrics.DocumentsCreatedTotal.Inc()
	logger.FromContext(r.Context()).Info("document_created", "id", id, "links", len(doc.Links))
	writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// 文档注释：更新文档
// 背景：与新增走同一套解码与校验；通过后在一个事务内改写文档、利益相关方，并在请求带 links 时替换链接集合。
// 约束：id 非法 400；校验失败 422 {errors}；文档不存在 404；成功 204。
func (s *Server) updateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	doc, errs, err := s.check(w, r, &id)
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large or unreadable")
		return
	}
	if !s.acceptable(w, r, doc, errs) {
		return
	}
	if err := s.st.UpdateDocument(r.Context(), id, doc); err != nil {
		writeStoreError(w, r, "document_update_error", err)
		return
	}
	metrics.DocumentsUpdatedTotal.Inc()
	logger.FromContext(r.Context()).Info("document_updated", "id", id, "links", len(doc.Links))
	w.WriteHeader(http.StatusNoContent)
}

// acceptable：校验错误或链接目标缺失时写出 422 并返回 false
func (s *Server) acceptable(w http.ResponseWriter, r *http.Request, doc model.Document, errs validate.Errors) bool {
	if !errs.Valid() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return false
	}
	if err := s.checkLinkTargets(r.Context(), doc.Links); err != nil {
		if errors.Is(err, errLinkTargetMissing) {
			metrics.ValidationRejectionsTotal.WithLabelValues("links").Inc()
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"errors": validate.Errors{"links": validate.ErrLinkTarget.Error()},
			})
			return false
		}
		writeStoreError(w, r, "link_target_check_error", err)
		return false
	}
	return true
}

// checkLinkTargets：并发确认目标存在，首个缺失或错误即取消其余检查
func (s *Server) checkLinkTargets(ctx context.Context, links []model.Link) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(existsConcurrency)
	for _, l := range links {
		target := l.DocumentID
		g.Go(func() error {
			ok, err := s.st.DocumentExists(ctx, target)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%w: %d", errLinkTargetMissing, target)
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := s.st.ListDocuments(r.Context())
	if err != nil {
		writeStoreError(w, r, "document_list_error", err)
		return
	}
	if docs == nil {
		docs = []model.Document{}
	}
	writeJSON(w, http.StatusOK, docs)
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	doc, err := s.st.GetDocument(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "document_get_error", err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// nearDocuments：lat/lon 必填，precision 默认 6
func (s *Server) nearDocuments(w http.ResponseWriter, r *http.Request) {
	lat, okLat := queryFloat(r, "lat")
	lon, okLon := queryFloat(r, "lon")
	if !okLat || !okLon {
		writeError(w, http.StatusBadRequest, "lat and lon are required numbers")
		return
	}
	precision := 6
	if p, ok := queryFloat(r, "precision"); ok {
		precision = int(p)
	}
	out, err := s.st.ListNear(r.Context(), lat, lon, precision)
	if err != nil {
		writeStoreError(w, r, "document_near_error", err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
