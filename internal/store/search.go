package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"kiruna-explorer/internal/model"
)

// filterClause：筛选条件转为 WHERE 子句与参数，空条件返回空串
func filterClause(f model.Filter) (string, []any) {
	var conds []string
	var args []any
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Keyword != "" {
		add("strpos(LOWER(d.title), LOWER($%d)) > 0", f.Keyword)
	}
	if f.Type != "" {
		add("d.type = $%d", f.Type)
	}
	if len(f.Stakeholders) > 0 {
		add("EXISTS (SELECT 1 FROM document_stakeholders fs WHERE fs.document_id = d.id AND fs.name = ANY($%d))", pq.Array(f.Stakeholders))
	}
	if f.Scale != "" {
		add("d.scale = $%d", f.Scale)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// 文档注释：筛选文档
// 背景：图表与列表页都只展示命中的文档；链接仍完整挂载，指向未命中文档的链接由布局跳过。
// 返回：当页文档与全部命中数；PageSize ≤ 0 时不分页。
func (s *Store) SearchDocuments(ctx context.Context, f model.Filter) ([]model.Document, int, error) {
	where, args := filterClause(f)
	if f.PageSize <= 0 {
		docs, err := s.listWhere(ctx, where, args, "")
		return docs, len(docs), err
	}
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM documents d`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("store: count documents: %w", err)
	}
	n := len(args)
	tail := fmt.Sprintf(" LIMIT $%d OFFSET $%d", n+1, n+2)
	docs, err := s.listWhere(ctx, where, append(args, f.PageSize, f.Offset()), tail)
	return docs, total, err
}

// Stakeholders：已使用过的利益相关方名称，供表单提示
func (s *Store) Stakeholders(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT name FROM document_stakeholders ORDER BY name`)
}

// Scales：已使用过的比例尺取值
func (s *Store) Scales(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, `SELECT DISTINCT scale FROM documents ORDER BY scale`)
}

func (s *Store) distinct(ctx context.Context, q string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("store: catalog: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("store: catalog scan: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
