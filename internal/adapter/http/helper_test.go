package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"microloan-backend/internal/adapter/middleware"
	"microloan-backend/internal/domain/role"
)

// ---- helpers ----

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func newEchoWithValidator() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func mustJSON(v any) *bytes.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

type reqOpts struct {
	method  string
	target  string
	body    io.Reader
	actorID string
	role    role.Role
	params  map[string]string
}

// newCtx builds an echo context as RequireAuth would leave it.
func newCtx(e *echo.Echo, rs reqOpts) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(rs.method, rs.target, rs.body)
	if rs.body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if len(rs.params) > 0 {
		names := make([]string, 0, len(rs.params))
		values := make([]string, 0, len(rs.params))
		for k, v := range rs.params {
			names = append(names, k)
			values = append(values, v)
		}
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}
	if rs.actorID != "" {
		middleware.SetActor(c, rs.actorID, rs.role)
	}
	return c, rec
}

func decode[T any](rec *httptest.ResponseRecorder) (T, error) {
	var v T
	err := json.Unmarshal(rec.Body.Bytes(), &v)
	return v, err
}
