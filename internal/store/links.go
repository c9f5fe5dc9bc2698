package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/model"
)

// storedLink：库内无向链接，a < b
type storedLink struct {
	id   int64
	a, b int64
	typ  model.LinkType
}

// from：以 end 为视角的链接项，DocumentID 指向另一端
func (l storedLink) from(end int64) model.Link {
	other := l.b
	if end == l.b {
		other = l.a
	}
	return model.Link{ID: l.id, DocumentID: other, LinkType: l.typ}
}

func orderPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// classify：唯一约束冲突映射为 ErrDuplicateLink，外键失败映射为 ErrNotFound
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return ErrDuplicateLink
		case "23503":
			return ErrNotFound
		}
	}
	return err
}

// 文档注释：链接两个文档
// 约束：无向存储，较小 id 在前；同一对 + 类型重复时返回 ErrDuplicateLink；自链接返回 ErrSelfLink。
func (s *Store) LinkDocuments(ctx context.Context, a, b int64, t model.LinkType) (int64, error) {
	if a == b {
		return 0, ErrSelfLink
	}
	x, y := orderPair(a, b)
	var id int64
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO document_links(doc_a, doc_b, link_type) VALUES ($1,$2,$3) RETURNING id`,
		x, y, string(t)).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: link documents: %w", classify(err))
	}
	logger.L().Debug("db_link_ok", "id", id, "a", x, "b", y, "type", t)
	return id, nil
}

func (s *Store) UpdateLinkType(ctx context.Context, linkID int64, t model.LinkType) error {
	res, err := s.db.ExecContext(ctx, `UPDATE document_links SET link_type=$1 WHERE id=$2`, string(t), linkID)
	if err != nil {
		return fmt.Errorf("store: update link: %w", classify(err))
	}
	return mustAffect(res)
}

func (s *Store) DeleteLink(ctx context.Context, linkID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM document_links WHERE id=$1`, linkID)
	if err != nil {
		return fmt.Errorf("store: delete link: %w", err)
	}
	return mustAffect(res)
}

func mustAffect(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DocumentLinks：某文档的全部链接（以该文档为视角）
func (s *Store) DocumentLinks(ctx context.Context, id int64) ([]model.Link, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, doc_a, doc_b, link_type FROM document_links WHERE doc_a=$1 OR doc_b=$1 ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("store: document links: %w", err)
	}
	links, err := scanLinks(rows)
	if err != nil {
		return nil, err
	}
	out := make([]model.Link, 0, len(links))
	for _, l := range links {
		out = append(out, l.from(id))
	}
	return out, nil
}

func (s *Store) allLinks(ctx context.Context) ([]storedLink, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, doc_a, doc_b, link_type FROM document_links ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("store: all links: %w", err)
	}
	return scanLinks(rows)
}

func scanLinks(rows *sql.Rows) ([]storedLink, error) {
	defer rows.Close()
	var out []storedLink
	for rows.Next() {
		var l storedLink
		var t string
		if err := rows.Scan(&l.id, &l.a, &l.b, &t); err != nil {
			return nil, fmt.Errorf("store: scan link: %w", err)
		}
		l.typ = model.LinkType(t)
		out = append(out, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: links: %w", err)
	}
	return out, nil
}
