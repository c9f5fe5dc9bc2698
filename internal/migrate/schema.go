package migrate

import (
	"context"
	"database/sql"
	"fmt"

	"kiruna-explorer/internal/logger"
)

// 背景：首次运行自动创建文档、利益相关方、链接与边界表
// 约束：全部使用 IF NOT EXISTS，可重复执行；链接按 (较小 id, 较大 id, 类型) 唯一
var stmts = []string{
	`CREATE TABLE IF NOT EXISTS documents (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		scale TEXT NOT NULL,
		issuance_date DATE NOT NULL,
		date_precision TEXT NOT NULL,
		type TEXT NOT NULL,
		language TEXT,
		nr_pages INT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		entire_municipality BOOLEAN NOT NULL DEFAULT FALSE,
		geohash TEXT,
		description TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_documents_geohash ON documents(geohash text_pattern_ops)`,
	`CREATE TABLE IF NOT EXISTS document_stakeholders (
		document_id BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		name TEXT NOT NULL,
		position INT NOT NULL,
		PRIMARY KEY (document_id, name)
	)`,
	`CREATE TABLE IF NOT EXISTS document_links (
		id BIGSERIAL PRIMARY KEY,
		doc_a BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		doc_b BIGINT NOT NULL REFERENCES documents(id) ON DELETE CASCADE,
		link_type TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		CHECK (doc_a < doc_b)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uniq_document_link ON document_links(doc_a, doc_b, link_type)`,
	`CREATE INDEX IF NOT EXISTS idx_document_links_b ON document_links(doc_b)`,
	`CREATE TABLE IF NOT EXISTS boundaries (
		name TEXT PRIMARY KEY,
		geojson JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for i, s := range stmts {
		logger.L().Debug("schema_exec", "idx", i)
		if _, err := db.ExecContext(ctx, s); err != nil {
			return fmt.Errorf("migrate: stmt %d: %w", i, err)
		}
	}
	logger.L().Debug("schema_done")
	return nil
}
