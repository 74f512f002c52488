package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// PingFunc はストレージの疎通確認を行う関数です。
type PingFunc func(ctx context.Context) error

// Health はストレージに ping し、結果を返すハンドラーを生成します。失敗理由はログにのみ出力します。
func Health(ping PingFunc, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := ping(ctx); err != nil {
				logger.Error().Err(err).Str("request_id", c.GetString(requestIDKey)).Msg("storage ping failed")
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
