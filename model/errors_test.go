package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestNewNewsError(t *testing.T) {
	ne := NewNewsError(ErrorKindInvalidTopic, "bad topic")

	if ne.ID == "" {
		t.Error("expected non-empty correlation ID")
	}
	if ne.Timestamp.IsZero() {
		t.Error("expected timestamp to be set")
	}
	if ne.Kind != ErrorKindInvalidTopic {
		t.Errorf("expected kind %q, got %q", ErrorKindInvalidTopic, ne.Kind)
	}
	if ne.Suggestion == "" {
		t.Error("expected a suggestion for a known error kind")
	}
}

func TestNewsErrorError(t *testing.T) {
	ne := NewNewsError(ErrorKindHTTPServerError, "Server error").
		WithURL("https://news.google.com/rss").
		WithOperation("fetch_feed").
		WithHTTPStatus(503)

	msg := ne.Error()
	for _, want := range []string{"Server error", "https://news.google.com/rss", "fetch_feed", "503", string(ErrorKindHTTPServerError), ne.ID} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected error string to contain %q, got %q", want, msg)
		}
	}
}

func TestNewsErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	ne := NewNewsErrorWithCause(ErrorKindConnectionFailed, "Connection failed", cause)

	if !errors.Is(ne, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestErrorKindCategory(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want Category
	}{
		{ErrorKindInvalidTopic, CategoryInvalidArgument},
		{ErrorKindEmptyQuery, CategoryInvalidArgument},
		{ErrorKindInvalidLimit, CategoryInvalidArgument},
		{ErrorKindInvalidURL, CategoryInvalidArgument},
		{ErrorKindSchema, CategoryInvalidArgument},
		{ErrorKindTimeout, CategoryFetchError},
		{ErrorKindHTTPClientError, CategoryFetchError},
		{ErrorKindHTTPServerError, CategoryFetchError},
		{ErrorKindMalformedXML, CategoryFetchError},
		{ErrorKindExtraction, CategoryFetchError},
		{ErrorKindUnknownTool, CategoryNotFound},
		{ErrorKindUnknownResource, CategoryNotFound},
		{ErrorKindInternal, CategoryInternal},
		{ErrorKindUnknown, CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			if got := tt.kind.Category(); got != tt.want {
				t.Errorf("Category() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCategoryPredicates(t *testing.T) {
	invalid := NewNewsError(ErrorKindEmptyQuery, "empty query")
	fetch := NewNewsError(ErrorKindMalformedXML, "bad xml")
	notFound := NewNewsError(ErrorKindUnknownTool, "no such tool")

	if !IsInvalidArgument(invalid) || IsFetchError(invalid) || IsNotFound(invalid) {
		t.Error("empty query should classify as invalid argument only")
	}
	if !IsFetchError(fetch) || IsInvalidArgument(fetch) {
		t.Error("malformed xml should classify as fetch error only")
	}
	if !IsNotFound(notFound) || IsFetchError(notFound) {
		t.Error("unknown tool should classify as not found only")
	}

	// Wrapped NewsErrors still classify
	wrapped := fmt.Errorf("tool failed: %w", fetch)
	if !IsFetchError(wrapped) {
		t.Error("wrapped fetch error should still classify as fetch error")
	}

	if IsInvalidArgument(errors.New("plain")) || IsFetchError(nil) {
		t.Error("plain and nil errors should not classify")
	}
}

func TestCreateHTTPError(t *testing.T) {
	tests := []struct {
		status int
		want   ErrorKind
	}{
		{404, ErrorKindHTTPClientError},
		{429, ErrorKindHTTPClientError},
		{500, ErrorKindHTTPServerError},
		{503, ErrorKindHTTPServerError},
	}

	for _, tt := range tests {
		resp := &http.Response{
			StatusCode: tt.status,
			Status:     fmt.Sprintf("%d status", tt.status),
			Header:     http.Header{},
		}
		ne := CreateHTTPError(resp, "https://news.google.com/rss")
		if ne.Kind != tt.want {
			t.Errorf("status %d: expected kind %q, got %q", tt.status, tt.want, ne.Kind)
		}
		if ne.HTTPStatus != tt.status {
			t.Errorf("status %d: expected HTTPStatus %d, got %d", tt.status, tt.status, ne.HTTPStatus)
		}
		if !IsFetchError(ne) {
			t.Errorf("status %d: expected a fetch error", tt.status)
		}
	}
}

func TestCreateParsingError(t *testing.T) {
	ne := CreateParsingError(errors.New("XML syntax error on line 3"), "https://news.google.com/rss")
	if ne.Kind != ErrorKindMalformedXML {
		t.Errorf("expected kind %q, got %q", ErrorKindMalformedXML, ne.Kind)
	}

	ne = CreateParsingError(errors.New("Failed to detect feed type"), "https://news.google.com/rss")
	if ne.Kind != ErrorKindParsing {
		t.Errorf("expected kind %q, got %q", ErrorKindParsing, ne.Kind)
	}
}

func TestCreateNetworkError(t *testing.T) {
	ne := CreateNetworkError(errors.New("dial tcp: i/o timeout"), "https://news.google.com/rss")
	if ne.Kind != ErrorKindTimeout {
		t.Errorf("expected kind %q, got %q", ErrorKindTimeout, ne.Kind)
	}

	ne = CreateNetworkError(errors.New("dial tcp: lookup news.google.com: no such host"), "https://news.google.com/rss")
	if ne.Kind != ErrorKindDNSResolution {
		t.Errorf("expected kind %q, got %q", ErrorKindDNSResolution, ne.Kind)
	}

	ne = CreateNetworkError(errors.New("dial tcp 127.0.0.1:80: connect: connection refused"), "https://news.google.com/rss")
	if ne.Kind != ErrorKindConnectionFailed {
		t.Errorf("expected kind %q, got %q", ErrorKindConnectionFailed, ne.Kind)
	}
}
