package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Abdullah-1719/ChaletF/internal/pkg/logger"
)

// ErrorResponse はエラーレスポンスの統一フォーマット
// クライアントは error フィールドをそのまま利用者に表示する
type ErrorResponse struct {
	Error string `json:"error"`
}

// CustomHTTPErrorHandler はカスタムエラーハンドラー
// すべての失敗を {"error": message} の形で同期的に返す
func CustomHTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := "Internal server error"

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		} else {
			message = http.StatusText(code)
		}
	}

	// 5xx のみサーバー側の問題としてログに残す
	if code >= 500 {
		logger.Error("サーバーエラー",
			zap.Int("status", code),
			zap.String("path", c.Request().URL.Path),
			zap.Error(err),
		)
	}

	if err := c.JSON(code, ErrorResponse{Error: message}); err != nil {
		logger.Error("エラーレスポンス送信失敗", zap.Error(err))
	}
}
