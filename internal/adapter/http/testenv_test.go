package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"lendcircle-backend/internal/auth"

	"github.com/labstack/echo/v4"
)

var testSecret = []byte("handler-test-secret")

const (
	tLoanID     = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	tBorrowerID = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
	tLenderID   = "cccccccccccccccccccccccccccccccc"
)

func newEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	return e
}

func bearerFor(t *testing.T, userID, email string, roles ...string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID, email, roles, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return "Bearer " + token
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any, authz string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rd = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if authz != "" {
		req.Header.Set(echo.HeaderAuthorization, authz)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid JSON response: %v; raw=%s", err, rec.Body.String())
	}
	return out
}
