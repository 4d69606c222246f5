package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const (
	HeaderRequestID = "Ax-Request-Id"
	HeaderRequestAt = "Ax-Request-At"
	HeaderReplay    = "Ax-Idempotent-Replay"

	// In-flight claim lifetime; finishing the handler replaces it.
	provisionalLockTTL = 60 * time.Second
	maxClockSkew       = 10 * time.Minute
)

// captureWriter tees the handler's response so it can be stored for replay.
type captureWriter struct {
	http.ResponseWriter
	body bytes.Buffer
	code int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

func jsonErr(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// Idempotency replays the stored response of a mutating request that was already
// handled for the same method, route, actor and Ax-Request-Id. It must run after RequireAuth.
// Server errors are not stored so the client can retry with the same id.
func Idempotency(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) echo.MiddlewareFunc {
	if logger == nil {
		logger = slog.Default()
	}
	store := idempStore{rdb: rdb}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			actorID, _, ok := Actor(c)
			if !ok {
				return jsonErr(c, http.StatusUnauthorized, "unauthorized")
			}
			meta, err := parseRequestMeta(req.Header, nowUTC())
			if err != nil {
				return jsonErr(c, http.StatusBadRequest, err.Error())
			}

			var body []byte
			if req.Body != nil {
				body, _ = io.ReadAll(req.Body)
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			hash := bodyHash(body)

			key := buildKey(req.Method, c.Path(), actorID, meta.ID)
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			defer cancel()

			entry := idempEntry{
				InProgress:  true,
				BodySHA256:  hash,
				RequestID:   meta.ID,
				ActorID:     actorID,
				RequestAtMS: meta.At.UnixMilli(),
				CreatedAt:   nowUTC(),
			}
			claimed, err := store.reserve(ctx, key, entry)
			if err != nil {
				logger.Error("idempotency store unavailable", "key", key, "err", err)
				return jsonErr(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !claimed {
				return replay(ctx, c, store, key, hash, logger)
			}

			w := &captureWriter{ResponseWriter: c.Response().Writer, code: http.StatusOK}
			c.Response().Writer = w
			if err := next(c); err != nil {
				c.Error(err)
			}

			if w.code >= http.StatusInternalServerError {
				if err := store.release(context.Background(), key); err != nil {
					logger.Warn("idempotency release failed", "key", key, "err", err)
				}
				return nil
			}

			entry.InProgress = false
			entry.Code = w.code
			entry.Body = w.body.Bytes()
			entry.CreatedAt = nowUTC()
			if err := store.finish(context.Background(), key, entry, ttl); err != nil {
				logger.Warn("idempotency save failed", "key", key, "err", err)
			}
			return nil
		}
	}
}

func replay(ctx context.Context, c echo.Context, store idempStore, key, hash string, logger *slog.Logger) error {
	cur, err := store.load(ctx, key)
	if err != nil {
		logger.Warn("idempotency entry load failed", "key", key, "err", err)
	}
	if cur.BodySHA256 != "" && cur.BodySHA256 != hash {
		return jsonErr(c, http.StatusConflict, "Ax-Request-Id reused with different body")
	}
	if cur.replayable() {
		c.Response().Header().Set(HeaderReplay, "true")
		return c.Blob(cur.Code, echo.MIMEApplicationJSON, cur.Body)
	}
	return jsonErr(c, http.StatusConflict, "request is already in progress")
}
