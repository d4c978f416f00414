package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	adminapp "github.com/sngm3741/feedback-collector/api/internal/admin/application"
	"github.com/sngm3741/feedback-collector/api/internal/interfaces/http/common"
)

// dashboardHandler は管理ダッシュボードを描画する。未ログインの場合は同じ
// ページをログインフォームとして返す。
func (h *Handler) dashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sess := h.sessions.Get(r)
		if !sess.Authenticated() {
			h.renderLoginForm(w, "")
			return
		}

		data, err := h.reports.Dashboard(ctx, sess)
		if err != nil {
			h.logger.Printf("ダッシュボードデータの取得に失敗: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		view := buildDashboardView(sess.AdminUsername, data)
		if err := h.pages.ExecuteTemplate(w, "admin.html", view); err != nil {
			h.logger.Printf("ダッシュボードの描画に失敗: %v", err)
		}
	}
}

// feedbackListHandler は全フィードバックを JSON 配列で返す API。未ログインは 401。
func (h *Handler) feedbackListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		sess := h.sessions.Get(r)
		entries, err := h.reports.Feedback(ctx, sess)
		if errors.Is(err, adminapp.ErrUnauthorized) {
			common.WriteJSON(h.logger, w, http.StatusUnauthorized, common.ErrorBody("Unauthorized"))
			return
		}
		if err != nil {
			h.logger.Printf("フィードバック一覧の取得に失敗: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.ErrorBody(err.Error()))
			return
		}

		items := make([]feedbackEntryResponse, 0, len(entries))
		for _, entry := range entries {
			items = append(items, buildFeedbackResponse(entry))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, items)
	}
}
