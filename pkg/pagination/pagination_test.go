package pagination

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestFromContext_Defaults(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.Limit != DefaultLimit {
		t.Errorf("expected default limit %d, got %d", DefaultLimit, p.Limit)
	}
	if p.Offset != 0 {
		t.Errorf("expected default offset 0, got %d", p.Offset)
	}
}

func TestFromContext_CustomValues(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/?_count=50&_offset=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	p := FromContext(c)

	if p.Limit != 50 {
		t.Errorf("expected limit 50, got %d", p.Limit)
	}
	if p.Offset != 10 {
		t.Errorf("expected offset 10, got %d", p.Offset)
	}
}

func TestFromContext_POSTForm(t *testing.T) {
	e := echo.New()
	body := url.Values{"_count": {"5"}, "subject": {"Patient/1"}}.Encode()
	req := httptest.NewRequest(http.MethodPost, "/fhir/Observation/_search", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	c := e.NewContext(req, httptest.NewRecorder())

	if p := FromContext(c); p.Limit != 5 {
		t.Errorf("expected limit 5 from form body, got %d", p.Limit)
	}
}

func TestFromValues_Bounds(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"_count=500", MaxLimit, 0},
		{"_count=-3&_offset=-1", DefaultLimit, 0},
		{"_count=abc&_offset=xyz", DefaultLimit, 0},
		{"_count=1&_offset=7", 1, 7},
	}
	for _, tt := range tests {
		v, _ := url.ParseQuery(tt.query)
		p := FromValues(v)
		if p.Limit != tt.wantLimit || p.Offset != tt.wantOffset {
			t.Errorf("FromValues(%q) = %+v, want limit=%d offset=%d", tt.query, p, tt.wantLimit, tt.wantOffset)
		}
	}
}

func TestWindow(t *testing.T) {
	tests := []struct {
		p          Params
		total      int
		start, end int
	}{
		{Params{Limit: 10, Offset: 0}, 25, 0, 10},
		{Params{Limit: 10, Offset: 20}, 25, 20, 25},
		{Params{Limit: 10, Offset: 30}, 25, 25, 25},
		{Params{Limit: 10, Offset: 0}, 0, 0, 0},
	}
	for _, tt := range tests {
		start, end := tt.p.Window(tt.total)
		if start != tt.start || end != tt.end {
			t.Errorf("%+v.Window(%d) = [%d,%d), want [%d,%d)", tt.p, tt.total, start, end, tt.start, tt.end)
		}
	}
}

func TestHasNextAndPrevious(t *testing.T) {
	p := Params{Limit: 10, Offset: 10}
	if !p.HasNext(25) {
		t.Error("expected HasNext with 25 total")
	}
	if p.HasNext(20) {
		t.Error("expected no next page at 20 total")
	}
	if !p.HasPrevious() {
		t.Error("expected HasPrevious at offset 10")
	}
	if (Params{Limit: 10}).HasPrevious() {
		t.Error("expected no previous page at offset 0")
	}
}
