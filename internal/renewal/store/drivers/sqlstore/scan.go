package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/renewal/internal/renewal/domain"
)

// Layouts a driver may hand back for timestamp and date columns stored as text.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

func parseTimeText(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	// Strip a monotonic clock suffix written by time.Time.String.
	if i := strings.Index(s, " m="); i >= 0 {
		s = s[:i]
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("sqlstore: unrecognised time %q", s)
}

func toTime(src any) (time.Time, error) {
	switch v := src.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTimeText(v)
	case []byte:
		return parseTimeText(string(v))
	}
	return time.Time{}, fmt.Errorf("sqlstore: cannot scan %T into time", src)
}

// timeCol scans a NOT NULL timestamp, or a calendar date when date is set.
type timeCol struct {
	dst  *time.Time
	date bool
}

func (c timeCol) Scan(src any) error {
	t, err := toTime(src)
	if err != nil {
		return err
	}
	if c.date {
		y, m, d := t.Date()
		t = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	} else {
		t = t.UTC()
	}
	*c.dst = t
	return nil
}

type nullTimeCol struct {
	dst **time.Time
}

func (c nullTimeCol) Scan(src any) error {
	if src == nil {
		*c.dst = nil
		return nil
	}
	t, err := toTime(src)
	if err != nil {
		return err
	}
	t = t.UTC()
	*c.dst = &t
	return nil
}

// nullStringCol maps NULL to "".
type nullStringCol struct {
	dst *string
}

func (c nullStringCol) Scan(src any) error {
	var ns sql.NullString
	if err := ns.Scan(src); err != nil {
		return err
	}
	*c.dst = ns.String
	return nil
}

// nullString maps "" to NULL for optional references.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// dateArg is how calendar dates are bound: YYYY-MM-DD works for both the
// sqlite TEXT column and the postgres DATE column.
func dateArg(t time.Time) string { return domain.FormatDate(t) }

func ts(t time.Time) time.Time { return t.UTC() }

// scanRows reads every row through dest, which returns scan targets for
// the current column set. Rows are always closed before returning so the
// connection is free for the next statement.
func scanRows[T any](rows *sql.Rows, dest func(v *T, cols []string) []any) ([]T, error) {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	out := []T{}
	for rows.Next() {
		var v T
		if err := rows.Scan(dest(&v, cols)...); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
