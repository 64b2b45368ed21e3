package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shosa/coregre-tracking/internal/domain"
	"github.com/shosa/coregre-tracking/internal/export"
	"github.com/shosa/coregre-tracking/internal/id"
)

// exportRowCap bounds one export the same way tree assembly is bounded.
const exportRowCap = 10000

// handleExportLinks streams the links matching a query as a CSV or XLSX
// download. Served outside huma because the response is a file, not JSON.
func (s *Server) handleExportLinks(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		query = domain.WildcardQuery
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = export.FormatCSV
	}

	rows, _, err := s.store.MatchLinks(r.Context(), query, exportRowCap)
	if err != nil {
		s.logger.Error("export query failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	ids := make([]int64, 0, len(rows))
	seen := make(map[int64]bool)
	for _, row := range rows {
		if !seen[row.Link.TagID] {
			seen[row.Link.TagID] = true
			ids = append(ids, row.Link.TagID)
		}
	}
	tags, err := s.store.GetTagRefs(r.Context(), ids)
	if err != nil {
		s.logger.Error("export tag lookup failed", "error", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	docID := id.MustGenerate("exp")
	stamp := time.Now().Format("20060102-150405")
	switch format {
	case export.FormatXLSX:
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=links-%s.xlsx", stamp))
		if err := export.WriteXLSX(w, "Links", rows, tags); err != nil {
			s.logger.Error("xlsx write failed", "export_id", docID, "error", err)
			return
		}
	case export.FormatCSV:
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=links-%s.csv", stamp))
		if err := export.WriteCSV(w, rows, tags); err != nil {
			s.logger.Error("csv write failed", "export_id", docID, "error", err)
			return
		}
	default:
		http.Error(w, fmt.Sprintf("unknown format %q", format), http.StatusBadRequest)
		return
	}
	s.logger.Info("export generated", "export_id", docID, "format", format, "rows", len(rows))
}
