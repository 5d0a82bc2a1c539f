package middleware

import (
	"net/http"
	"time"

	"github.com/mavdeev/salesdesk/internal/logger"
)

type (
	// ResponseData - статус и размер ответа, захваченные при записи
	ResponseData struct {
		status int
		size   int
	}

	// LoggingResponseWriter - обёртка над http.ResponseWriter,
	// собирающая сведения об ответе
	LoggingResponseWriter struct {
		http.ResponseWriter
		responseData *ResponseData
	}
)

func (r *LoggingResponseWriter) Write(b []byte) (int, error) {
	size, err := r.ResponseWriter.Write(b)
	r.responseData.size += size
	return size, err
}

func (r *LoggingResponseWriter) WriteHeader(statusCode int) {
	r.ResponseWriter.WriteHeader(statusCode)
	r.responseData.status = statusCode
}

// LogHandle — middleware-логер для входящих HTTP-запросов.
func LogHandle(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		responseData := &ResponseData{}
		lw := LoggingResponseWriter{
			ResponseWriter: w,
			responseData:   responseData,
		}

		h.ServeHTTP(&lw, r)

		logger.Info("got incoming HTTP request",
			"uri", r.RequestURI,
			"method", r.Method,
			"status", responseData.status,
			"duration", time.Since(start),
			"size", responseData.size,
		)
	})
}
