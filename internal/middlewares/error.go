package middlewares

import (
	"errors"
	"net/http"

	"github.com/devjunayed/online-nursery-website-server/internal/handlerutils"
	"github.com/devjunayed/online-nursery-website-server/internal/servererrors"
	"go.uber.org/zap"
)

// Handle adapts an APIHandler into a http.HandlerFunc with centralized error
// handling: business failures keep the response envelope and the status a
// handler decided on, anything unexpected becomes a 500.
func (mw *middleware) Handle(h handlerutils.APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		var serverError *servererrors.ServerError
		if errors.As(err, &serverError) {
			mw.logger.Info("request rejected",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", serverError.StatusCode),
				zap.String("reason", serverError.Error()),
			)

			handlerutils.WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Error(),
				serverError.Errors,
			)
			return
		}

		mw.logger.Error("request failed",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("requestID", GetRequestID(r.Context())),
			zap.Error(err),
		)

		handlerutils.WriteErrorJSON(
			w,
			http.StatusInternalServerError,
			"something went wrong",
			nil,
		)
	}
}
