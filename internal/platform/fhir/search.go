package fhir

import (
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
)

// Token is a parsed FHIR token search value of the form [system|]code.
type Token struct {
	System string
	Code   string
}

// ParseToken splits a token value on the first '|'.
// Examples: "http://loinc.org|2345-7" -> (http://loinc.org, 2345-7), "2345-7" -> ("", 2345-7)
func ParseToken(raw string) Token {
	if i := strings.Index(raw, "|"); i >= 0 {
		return Token{System: raw[:i], Code: strings.TrimSpace(raw[i+1:])}
	}
	return Token{Code: strings.TrimSpace(raw)}
}

// ParseTokenList parses a comma separated OR list of tokens. Empty entries are dropped.
func ParseTokenList(raw string) []Token {
	var tokens []Token
	for _, part := range strings.Split(raw, ",") {
		t := ParseToken(part)
		if t.Code == "" {
			continue
		}
		tokens = append(tokens, t)
	}
	return tokens
}

// ReferenceID returns the id part of a reference search value.
// Examples: "Patient/123" -> "123", "123" -> "123", "http://x/fhir/Patient/123" -> "123"
func ReferenceID(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.LastIndex(raw, "/"); i >= 0 {
		return raw[i+1:]
	}
	return raw
}

// ExtractSearchParams collects search parameters from the query string and,
// for POST _search, the form body. Repeated parameters are joined with ','
// which gives them OR semantics for token parameters. Parameters with a
// leading underscore are result parameters and are skipped.
func ExtractSearchParams(c echo.Context) map[string]string {
	values := url.Values{}
	for k, v := range c.QueryParams() {
		values[k] = append(values[k], v...)
	}
	if req := c.Request(); req.Method == "POST" {
		if err := req.ParseForm(); err == nil {
			for k, v := range req.PostForm {
				values[k] = append(values[k], v...)
			}
		}
	}
	params := map[string]string{}
	for k, v := range values {
		if len(v) == 0 || strings.HasPrefix(k, "_") {
			continue
		}
		params[k] = strings.Join(v, ",")
	}
	return params
}

// QueryWithoutPaging re-encodes the request query minus _count and _offset so
// pagination links can append their own.
func QueryWithoutPaging(values url.Values) string {
	out := url.Values{}
	for k, v := range values {
		if k == "_count" || k == "_offset" {
			continue
		}
		out[k] = v
	}
	return out.Encode()
}
