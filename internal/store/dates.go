package store

import (
	"database/sql"
	"time"

	"kiruna-explorer/internal/model"
)

// formatDate：按粒度还原发布日期字符串
func formatDate(t time.Time, p model.DatePrecision) string {
	switch p {
	case model.YearOnly:
		return t.Format("2006")
	case model.MonthYear:
		return t.Format("2006-01")
	}
	return t.Format("2006-01-02")
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt(n *int) sql.NullInt64 {
	if n == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*n), Valid: true}
}
