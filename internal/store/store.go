// 包 store：PostgreSQL 数据访问层，负责文档、利益相关方、链接与边界的读写
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"kiruna-explorer/internal/geo"
	"kiruna-explorer/internal/logger"
	"kiruna-explorer/internal/model"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrDuplicateLink = errors.New("store: duplicate link")
	ErrSelfLink      = errors.New("store: document cannot link to itself")
)

// 入库时写入的 geohash 精度
const geohashPrecision = 12

// Store：数据库访问入口，持有连接池
type Store struct {
	db *sql.DB
}

func AttachDB(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) DB() *sql.DB { return s.db }

// Ping：健康检查
func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// 文档注释：新增文档
// 背景：文档行、利益相关方与链接在同一事务内写入，任一步失败整体回滚，不会留下半条记录。
// 约束：调用方负责先通过校验；链接按较小 id 在前存储；目标不存在时外键约束失败。
func (s *Store) InsertDocument(ctx context.Context, doc model.Document) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	lat, lon, hash := pointColumns(doc.Geolocation)
	var id int64
	err = tx.QueryRowContext(ctx, `INSERT INTO documents
		(title, scale, issuance_date, date_precision, type, language, nr_pages, latitude, longitude, entire_municipality, geohash, description)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12) RETURNING id`,
		doc.Title, doc.Scale, doc.IssuanceDay(), string(doc.DatePrecision()), doc.Type,
		nullString(doc.Language), nullInt(doc.NrPages), lat, lon,
		doc.Geolocation.IsEntireMunicipality(), hash, nullString(doc.Description),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("store: insert document: %w", err)
	}
	if err := writeStakeholders(ctx, tx, id, doc.Stakeholders); err != nil {
		return 0, err
	}
	if err := writeLinks(ctx, tx, id, doc.Links); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: commit: %w", err)
	}
	logger.L().Debug("db_insert_document_ok", "id", id, "links", len(doc.Links))
	return id, nil
}

// 文档注释：更新文档
// 背景：文档行与利益相关方整体改写；doc.Links 非 nil 时该文档的链接集合（两个方向）整体替换，
// 为 nil 时保留现有链接。全部在一个事务内完成。
// 约束：id 不存在返回 ErrNotFound；链接目标不存在返回 ErrNotFound。
func (s *Store) UpdateDocument(ctx context.Context, id int64, doc model.Document) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	lat, lon, hash := pointColumns(doc.Geolocation)
	res, err := tx.ExecContext(ctx, `UPDATE documents SET
		title=$1, scale=$2, issuance_date=$3, date_precision=$4, type=$5, language=$6, nr_pages=$7,
		latitude=$8, longitude=$9, entire_municipality=$10, geohash=$11, description=$12
		WHERE id=$13`,
		doc.Title, doc.Scale, doc.IssuanceDay(), string(doc.DatePrecision()), doc.Type,
		nullString(doc.Language), nullInt(doc.NrPages), lat, lon,
		doc.Geolocation.IsEntireMunicipality(), hash, nullString(doc.Description), id,
	)
	if err != nil {
		return fmt.Errorf("store: update document: %w", err)
	}
	if err := mustAffect(res); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM document_stakeholders WHERE document_id=$1`, id); err != nil {
		return fmt.Errorf("store: clear stakeholders: %w", err)
	}
	if err := writeStakeholders(ctx, tx, id, doc.Stakeholders); err != nil {
		return err
	}
	if doc.Links != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM document_links WHERE doc_a=$1 OR doc_b=$1`, id); err != nil {
			return fmt.Errorf("store: clear links: %w", err)
		}
		if err := writeLinks(ctx, tx, id, doc.Links); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	logger.L().Debug("db_update_document_ok", "id", id, "links", len(doc.Links))
	return nil
}

// pointColumns：坐标列与 geohash；无点位时全部为 NULL
func pointColumns(g model.Geolocation) (lat, lon sql.NullFloat64, hash sql.NullString) {
	if !g.HasPoint() {
		return
	}
	lat = sql.NullFloat64{Float64: *g.Latitude, Valid: true}
	lon = sql.NullFloat64{Float64: *g.Longitude, Valid: true}
	hash = sql.NullString{String: geo.Geohash(lat.Float64, lon.Float64, geohashPrecision), Valid: true}
	return
}

func writeStakeholders(ctx context.Context, tx *sql.Tx, id int64, names []string) error {
	if _, err := tx.ExecContext(ctx, `INSERT INTO document_stakeholders(document_id, name, position)
		SELECT $1, t.name, t.ord FROM unnest($2::text[]) WITH ORDINALITY AS t(name, ord)`,
		id, pq.Array(names)); err != nil {
		return fmt.Errorf("store: insert stakeholders: %w", err)
	}
	return nil
}

func writeLinks(ctx context.Context, tx *sql.Tx, id int64, links []model.Link) error {
	for _, l := range links {
		a, b := orderPair(id, l.DocumentID)
		if _, err := tx.ExecContext(ctx, `INSERT INTO document_links(doc_a, doc_b, link_type) VALUES ($1,$2,$3)`,
			a, b, string(l.LinkType)); err != nil {
			return fmt.Errorf("store: insert link: %w", classify(err))
		}
	}
	return nil
}

const selectDocument = `SELECT d.id, d.title, d.scale, d.issuance_date, d.date_precision, d.type,
	d.language, d.nr_pages, d.latitude, d.longitude, d.entire_municipality, d.description,
	COALESCE(array_agg(s.name ORDER BY s.position) FILTER (WHERE s.name IS NOT NULL), '{}')
	FROM documents d LEFT JOIN document_stakeholders s ON s.document_id = d.id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(r rowScanner) (model.Document, error) {
	var (
		d          model.Document
		id         int64
		day        time.Time
		precision  string
		lang, desc sql.NullString
		pages      sql.NullInt64
		lat, lon   sql.NullFloat64
		entire     bool
		names      pq.StringArray
	)
	if err := r.Scan(&id, &d.Title, &d.Scale, &day, &precision, &d.Type,
		&lang, &pages, &lat, &lon, &entire, &desc, &names); err != nil {
		return model.Document{}, err
	}
	d.ID = &id
	d.IssuanceDate = formatDate(day, model.DatePrecision(precision))
	d.Stakeholders = []string(names)
	if lang.Valid {
		d.Language = &lang.String
	}
	if desc.Valid {
		d.Description = &desc.String
	}
	if pages.Valid {
		n := int(pages.Int64)
		d.NrPages = &n
	}
	if lat.Valid && lon.Valid {
		d.Geolocation.Latitude, d.Geolocation.Longitude = &lat.Float64, &lon.Float64
	}
	if entire {
		d.Geolocation.Municipality = model.EntireMunicipality
	}
	return d, nil
}

// GetDocument：单个文档，含利益相关方与链接
func (s *Store) GetDocument(ctx context.Context, id int64) (model.Document, error) {
	row := s.db.QueryRowContext(ctx, selectDocument+` WHERE d.id = $1 GROUP BY d.id`, id)
	d, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Document{}, ErrNotFound
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("store: get document: %w", err)
	}
	links, err := s.DocumentLinks(ctx, id)
	if err != nil {
		return model.Document{}, err
	}
	d.Links = links
	return d, nil
}

// ListDocuments：全部文档按 id 升序，链接从各自端点视角展开
func (s *Store) ListDocuments(ctx context.Context) ([]model.Document, error) {
	return s.listWhere(ctx, "", nil, "")
}

// listWhere：按条件列出文档并挂上链接；链接目标可能不在结果集中
func (s *Store) listWhere(ctx context.Context, where string, args []any, tail string) ([]model.Document, error) {
	rows, err := s.db.QueryContext(ctx, selectDocument+where+` GROUP BY d.id ORDER BY d.id`+tail, args...)
	if err != nil {
		return nil, fmt.Errorf("store: list documents: %w", err)
	}
	defer rows.Close()
	var docs []model.Document
	index := map[int64]int{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("store: scan document: %w", err)
		}
		index[*d.ID] = len(docs)
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list documents: %w", err)
	}
	if len(docs) == 0 {
		return docs, nil
	}

	all, err := s.allLinks(ctx)
	if err != nil {
		return nil, err
	}
	for _, sl := range all {
		for _, end := range []int64{sl.a, sl.b} {
			if i, ok := index[end]; ok {
				docs[i].Links = append(docs[i].Links, sl.from(end))
			}
		}
	}
	return docs, nil
}

// DocumentExists：链接目标检查
func (s *Store) DocumentExists(ctx context.Context, id int64) (bool, error) {
	var ok bool
	if err := s.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM documents WHERE id=$1)`, id).Scan(&ok); err != nil {
		return false, fmt.Errorf("store: document exists: %w", err)
	}
	return ok, nil
}
