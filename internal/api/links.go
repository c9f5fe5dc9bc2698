package api

import (
	"encoding/json"
	"net/http"

	"kiruna-explorer/internal/model"
	"kiruna-explorer/internal/validate"
)

type linkRequest struct {
	DocumentID int64          `json:"documentId"`
	LinkType   model.LinkType `json:"linkType"`
}

func decodeLink(w http.ResponseWriter, r *http.Request) (linkRequest, bool) {
	var req linkRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		return req, false
	}
	return req, true
}

func (s *Server) documentLinks(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	if _, err := s.st.GetDocument(r.Context(), id); err != nil {
		writeStoreError(w, r, "document_get_error", err)
		return
	}
	links, err := s.st.DocumentLinks(r.Context(), id)
	if err != nil {
		writeStoreError(w, r, "document_links_error", err)
		return
	}
	if links == nil {
		links = []model.Link{}
	}
	writeJSON(w, http.StatusOK, links)
}

// createLink：201 {id}；类型非法 422；重复 409；任一端不存在 404
func (s *Server) createLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid document id")
		return
	}
	req, ok := decodeLink(w, r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid link body")
		return
	}
	if err := validate.Links(&id, []model.Link{{DocumentID: req.DocumentID, LinkType: req.LinkType}}); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": validate.Errors{"links": err.Error()}})
		return
	}
	linkID, err := s.st.LinkDocuments(r.Context(), id, req.DocumentID, req.LinkType)
	if err != nil {
		writeStoreError(w, r, "link_create_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]int64{"id": linkID})
}

func (s *Server) updateLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid link id")
		return
	}
	req, ok := decodeLink(w, r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid link body")
		return
	}
	if !req.LinkType.Valid() {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": validate.Errors{"linkType": validate.ErrLinkType.Error()}})
		return
	}
	if err := s.st.UpdateLinkType(r.Context(), id, req.LinkType); err != nil {
		writeStoreError(w, r, "link_update_error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid link id")
		return
	}
	if err := s.st.DeleteLink(r.Context(), id); err != nil {
		writeStoreError(w, r, "link_delete_error", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
