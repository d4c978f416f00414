package admin

import (
	"context"
	"errors"
	"net/http"
	"time"

	adminapp "github.com/sngm3741/feedback-collector/api/internal/admin/application"
	"github.com/sngm3741/feedback-collector/api/internal/interfaces/http/common"
)

// loginRedirectHandler は GET /login をダッシュボードへ流す。未ログインなら
// ダッシュボード側がログインフォームを描画する。
func (h *Handler) loginRedirectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin-dashboard", http.StatusFound)
	}
}

// loginHandler は資格情報を検証し、成功時は署名付きセッション Cookie を発行して
// ダッシュボードへリダイレクトする。失敗時はどの要素が誤りかを伏せた汎用
// メッセージでログインフォームを再描画する。
func (h *Handler) loginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxFormBody)
		if err := r.ParseForm(); err != nil {
			h.renderLoginForm(w, "Invalid credentials")
			return
		}

		username := r.PostFormValue("username")
		password := r.PostFormValue("password")

		sess, err := h.auth.Login(ctx, username, password)
		if errors.Is(err, adminapp.ErrInvalidCredentials) {
			h.renderLoginForm(w, "Invalid credentials")
			return
		}
		if err != nil {
			h.logger.Printf("ログイン処理に失敗: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		if err := h.sessions.Set(w, sess); err != nil {
			h.logger.Printf("セッション Cookie の発行に失敗: %v", err)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}
		http.Redirect(w, r, "/admin-dashboard", http.StatusFound)
	}
}

// logoutHandler はセッションを破棄してトップへ戻す。未ログインでも安全。
func (h *Handler) logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.Clear(w)
		http.Redirect(w, r, "/", http.StatusFound)
	}
}

func (h *Handler) renderLoginForm(w http.ResponseWriter, loginError string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view := dashboardView{ShowLogin: true, LoginError: loginError}
	if err := h.pages.ExecuteTemplate(w, "admin.html", view); err != nil {
		h.logger.Printf("ログインフォームの描画に失敗: %v", err)
	}
}
