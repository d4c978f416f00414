package public

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sngm3741/feedback-collector/api/internal/interfaces/http/common"
	publicapp "github.com/sngm3741/feedback-collector/api/internal/public/application"
)

type submitFeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// feedbackCreateHandler はフォーム入力を受け取り、バリデーション結果に応じて
// 400/500/200 の JSON を返す。バリデーション失敗時は一切書き込みが発生しない。
func (h *Handler) feedbackCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		r.Body = http.MaxBytesReader(w, r.Body, common.MaxFormBody)
		if err := r.ParseForm(); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorBody("Invalid form data"))
			return
		}

		cmd := publicapp.SubmitFeedbackCommand{
			Name:      r.PostFormValue("name"),
			Email:     r.PostFormValue("email"),
			RatingRaw: r.PostFormValue("rating"),
			Comments:  r.PostFormValue("comments"),
		}

		id, err := h.commands.Submit(ctx, cmd)
		switch {
		case err == nil:
			common.WriteJSON(h.logger, w, http.StatusOK, submitFeedbackResponse{
				Success: true,
				Message: "Thank you for your feedback!",
				ID:      id,
			})
		case errors.Is(err, publicapp.ErrMissingField), errors.Is(err, publicapp.ErrInvalidRating):
			common.WriteJSON(h.logger, w, http.StatusBadRequest, common.ErrorBody(err.Error()))
		default:
			h.logger.Printf("フィードバック保存に失敗: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, common.ErrorBody(err.Error()))
		}
	}
}
