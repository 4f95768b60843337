package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyPath       = "path"
	KeyDocument   = "document"
	KeyKind       = "kind"
	KeySection    = "section"
	KeyRule       = "rule"
	KeyAuthor     = "author"
	KeyTerm       = "term"
	KeyReportID   = "report_id"
	KeyCount      = "count"
	KeyEvent      = "event"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func Document(d string) slog.Attr     { return slog.String(KeyDocument, d) }
func Kind(k string) slog.Attr         { return slog.String(KeyKind, k) }
func Section(s string) slog.Attr      { return slog.String(KeySection, s) }
func Rule(r string) slog.Attr         { return slog.String(KeyRule, r) }
func Author(a string) slog.Attr       { return slog.String(KeyAuthor, a) }
func Term(t string) slog.Attr         { return slog.String(KeyTerm, t) }
func ReportID(id string) slog.Attr    { return slog.String(KeyReportID, id) }
func Count(n int) slog.Attr           { return slog.Int(KeyCount, n) }
func Event(e string) slog.Attr        { return slog.String(KeyEvent, e) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
