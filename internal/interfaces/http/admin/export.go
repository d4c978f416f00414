package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	adminapp "github.com/sngm3741/feedback-collector/api/internal/admin/application"
)

// exportCSVHandler は全フィードバックを CSV ファイルとしてダウンロードさせる。
// 未ログインの場合はダッシュボード（＝ログインフォーム）へリダイレクト。
func (h *Handler) exportCSVHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sess := h.sessions.Get(r)
		data, err := h.reports.ExportCSV(ctx, sess)
		if errors.Is(err, adminapp.ErrUnauthorized) {
			http.Redirect(w, r, "/admin-dashboard", http.StatusFound)
			return
		}
		if err != nil {
			h.logger.Printf("CSV エクスポートに失敗: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename=feedback_data.csv")
		if _, err := w.Write(data); err != nil {
			h.logger.Printf("CSV レスポンスの書き込みに失敗: %v", err)
		}
	}
}
