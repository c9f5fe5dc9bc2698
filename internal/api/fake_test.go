package api

import (
	"context"
	"sort"
	"sync"

	"kiruna-explorer/internal/diagram"
	"kiruna-explorer/internal/model"
	"kiruna-explorer/internal/store"
	"kiruna-explorer/internal/style"
)

// fakeStore：内存实现，语义与 store.Store 对齐（无向链接、较小 id 在前）
type fakeStore struct {
	mu     sync.Mutex
	nextID int64
	docs   map[int64]model.Document
	links  map[int64][3]int64 // id → a, b, type index
	types  []model.LinkType
}

func newFakeStore() *fakeStore {
	return &fakeStore{docs: map[int64]model.Document{}, links: map[int64][3]int64{}}
}

func (f *fakeStore) typeIndex(t model.LinkType) int64 {
	for i, x := range f.types {
		if x == t {
			return int64(i)
		}
	}
	f.types = append(f.types, t)
	return int64(len(f.types) - 1)
}

func (f *fakeStore) InsertDocument(_ context.Context, doc model.Document) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	doc.ID = &id
	links := doc.Links
	doc.Links = nil
	f.docs[id] = doc
	for _, l := range links {
		f.addLink(id, l.DocumentID, l.LinkType)
	}
	return id, nil
}

func (f *fakeStore) addLink(a, b int64, t model.LinkType) (int64, error) {
	if a == b {
		return 0, store.ErrSelfLink
	}
	if _, ok := f.docs[a]; !ok {
		return 0, store.ErrNotFound
	}
	if _, ok := f.docs[b]; !ok {
		return 0, store.ErrNotFound
	}
	if a > b {
		a, b = b, a
	}
	ti := f.typeIndex(t)
	for _, l := range f.links {
		if l == [3]int64{a, b, ti} {
			return 0, store.ErrDuplicateLink
		}
	}
	f.nextID++
	f.links[f.nextID] = [3]int64{a, b, ti}
	return f.nextID, nil
}

func (f *fakeStore) linksOf(id int64) []model.Link {
	var ids []int64
	for lid := range f.links {
		ids = append(ids, lid)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var out []model.Link
	for _, lid := range ids {
		l := f.links[lid]
		switch id {
		case l[0]:
			out = append(out, model.Link{ID: lid, DocumentID: l[1], LinkType: f.types[l[2]]})
		case l[1]:
			out = append(out, model.Link{ID: lid, DocumentID: l[0], LinkType: f.types[l[2]]})
		}
	}
	return out
}

func (f *fakeStore) GetDocument(_ context.Context, id int64) (model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	d, ok := f.docs[id]
	if !ok {
		return model.Document{}, store.ErrNotFound
	}
	d.Links = f.linksOf(id)
	return d, nil
}

func (f *fakeStore) ListDocuments(_ context.Context) ([]model.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Document
	for id, d := range f.docs {
		d.Links = f.linksOf(id)
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return *out[i].ID < *out[j].ID })
	return out, nil
}

func (f *fakeStore) UpdateDocument(_ context.Context, id int64, doc model.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.docs[id]; !ok {
		return store.ErrNotFound
	}
	doc.ID = &id
	links := doc.Links
	doc.Links = nil
	f.docs[id] = doc
	if links == nil {
		return nil
	}
	for lid, l := range f.links {
		if l[0] == id || l[1] == id {
			delete(f.links, lid)
		}
	}
	for _, l := range links {
		if _, err := f.addLink(id, l.DocumentID, l.LinkType); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeStore) SearchDocuments(_ context.Context, flt model.Filter) ([]model.Document, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var hits []model.Document
	for id, d := range f.docs {
		if flt.Match(d) {
			d.Links = f.linksOf(id)
			hits = append(hits, d)
		}
	}
	sort.Slice(hits, func(i, j int) bool { return *hits[i].ID < *hits[j].ID })
	total := len(hits)
	if flt.PageSize > 0 {
		lo := min(flt.Offset(), total)
		hi := min(lo+flt.PageSize, total)
		hits = hits[lo:hi]
	}
	return hits, total, nil
}

func (f *fakeStore) Stakeholders(_ context.Context) ([]string, error) {
	return f.distinct(func(d model.Document) []string { return d.Stakeholders })
}

func (f *fakeStore) Scales(_ context.Context) ([]string, error) {
	return f.distinct(func(d model.Document) []string { return []string{d.Scale} })
}

func (f *fakeStore) distinct(values func(model.Document) []string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]struct{}{}
	out := []string{}
	for _, d := range f.docs {
		for _, v := range values(d) {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				out = append(out, v)
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeStore) DocumentExists(_ context.Context, id int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.docs[id]
	return ok, nil
}

func (f *fakeStore) LinkDocuments(_ context.Context, a, b int64, t model.LinkType) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLink(a, b, t)
}

func (f *fakeStore) UpdateLinkType(_ context.Context, linkID int64, t model.LinkType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.links[linkID]
	if !ok {
		return store.ErrNotFound
	}
	l[2] = f.typeIndex(t)
	f.links[linkID] = l
	return nil
}

func (f *fakeStore) DeleteLink(_ context.Context, linkID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.links[linkID]; !ok {
		return store.ErrNotFound
	}
	delete(f.links, linkID)
	return nil
}

func (f *fakeStore) DocumentLinks(_ context.Context, id int64) ([]model.Link, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.linksOf(id), nil
}

func (f *fakeStore) ListNear(_ context.Context, lat, lon float64, _ int) ([]store.Nearby, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []store.Nearby
	for _, d := range f.docs {
		if d.Geolocation.HasPoint() {
			out = append(out, store.Nearby{Document: d})
		}
	}
	return out, nil
}

func testOptions() Options {
	return Options{Diagram: diagram.DefaultConfig(), Styles: style.Default(), ContainmentCap: 64}
}
