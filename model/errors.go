// Package model defines core data structures and error types for the Google News MCP server.
package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// ErrorKind represents different categories of errors that can occur
type ErrorKind string

const (
	// ErrorKindInvalidTopic represents an unsupported news topic
	ErrorKindInvalidTopic ErrorKind = "invalid_topic"
	// ErrorKindEmptyQuery represents an empty or blank search keyword
	ErrorKindEmptyQuery ErrorKind = "empty_query"
	// ErrorKindInvalidLimit represents a negative result limit
	ErrorKindInvalidLimit ErrorKind = "invalid_limit"
	// ErrorKindInvalidURL represents a malformed or non-HTTP(S) article URL
	ErrorKindInvalidURL ErrorKind = "invalid_url"
	// ErrorKindSchema represents a tool input that failed schema validation
	ErrorKindSchema ErrorKind = "schema_mismatch"
	// ErrorKindConfiguration represents configuration-related errors
	ErrorKindConfiguration ErrorKind = "configuration"
	// ErrorKindTransport represents transport configuration errors
	ErrorKindTransport ErrorKind = "transport"

	// ErrorKindNetwork represents general network-related errors
	ErrorKindNetwork ErrorKind = "network"
	// ErrorKindTimeout represents request timeout errors
	ErrorKindTimeout ErrorKind = "timeout"
	// ErrorKindConnectionFailed represents connection establishment failures
	ErrorKindConnectionFailed ErrorKind = "connection_failed"
	// ErrorKindDNSResolution represents DNS resolution failures
	ErrorKindDNSResolution ErrorKind = "dns_resolution"
	// ErrorKindHTTP represents general HTTP errors
	ErrorKindHTTP ErrorKind = "http"
	// ErrorKindHTTPClientError represents HTTP 4xx responses from the upstream feed
	ErrorKindHTTPClientError ErrorKind = "http_client_error"
	// ErrorKindHTTPServerError represents HTTP 5xx responses from the upstream feed
	ErrorKindHTTPServerError ErrorKind = "http_server_error"
	// ErrorKindMalformedXML represents a feed document that is not valid XML
	ErrorKindMalformedXML ErrorKind = "malformed_xml"
	// ErrorKindEmptyFeed represents a feed response with no parseable content
	ErrorKindEmptyFeed ErrorKind = "empty_feed"
	// ErrorKindParsing represents other feed parsing errors
	ErrorKindParsing ErrorKind = "parsing"
	// ErrorKindExtraction represents a failure to extract readable article text
	ErrorKindExtraction ErrorKind = "extraction"

	// ErrorKindUnknownTool represents a call to an unregistered tool name
	ErrorKindUnknownTool ErrorKind = "unknown_tool"
	// ErrorKindUnknownResource represents a read of an unknown resource URI
	ErrorKindUnknownResource ErrorKind = "unknown_resource"
	// ErrorKindUnknownPrompt represents a request for an unknown prompt
	ErrorKindUnknownPrompt ErrorKind = "unknown_prompt"

	// ErrorKindInternal represents internal server errors
	ErrorKindInternal ErrorKind = "internal"
	// ErrorKindUnknown represents unclassified errors
	ErrorKindUnknown ErrorKind = "unknown"
)

// Category groups error kinds into the three categories the tool contract
// exposes to callers, plus internal.
type Category string

const (
	// CategoryInvalidArgument covers inputs rejected before any fetch happens
	CategoryInvalidArgument Category = "invalid_argument"
	// CategoryFetchError covers upstream fetch and parse failures
	CategoryFetchError Category = "fetch_error"
	// CategoryNotFound covers unknown tool, resource, and prompt names
	CategoryNotFound Category = "not_found"
	// CategoryInternal covers everything else
	CategoryInternal Category = "internal"
)

// Category returns the contract-level category for an error kind
func (k ErrorKind) Category() Category {
	switch k {
	case ErrorKindInvalidTopic, ErrorKindEmptyQuery, ErrorKindInvalidLimit,
		ErrorKindInvalidURL, ErrorKindSchema, ErrorKindConfiguration, ErrorKindTransport:
		return CategoryInvalidArgument
	case ErrorKindNetwork, ErrorKindTimeout, ErrorKindConnectionFailed, ErrorKindDNSResolution,
		ErrorKindHTTP, ErrorKindHTTPClientError, ErrorKindHTTPServerError,
		ErrorKindMalformedXML, ErrorKindEmptyFeed, ErrorKindParsing, ErrorKindExtraction:
		return CategoryFetchError
	case ErrorKindUnknownTool, ErrorKindUnknownResource, ErrorKindUnknownPrompt:
		return CategoryNotFound
	default:
		return CategoryInternal
	}
}

// NewsError represents a structured error with context for debugging
type NewsError struct {
	ID         string    `json:"id"`         // Unique correlation ID for tracking
	Timestamp  time.Time `json:"timestamp"`  // When the error occurred
	Kind       ErrorKind `json:"kind"`       // Category of error
	Message    string    `json:"message"`    // Human-readable error message
	Suggestion string    `json:"suggestion"` // Actionable suggestion for resolution

	URL       string `json:"url,omitempty"`       // Upstream URL that caused the error
	Operation string `json:"operation,omitempty"` // What operation was being performed
	Component string `json:"component,omitempty"` // Which component generated the error

	HTTPStatus int `json:"http_status,omitempty"` // Upstream HTTP status code

	Cause error `json:"-"` // Original error (not serialized to JSON)
}

// Error implements the error interface
func (ne *NewsError) Error() string {
	var parts []string

	if ne.Message != "" {
		parts = append(parts, ne.Message)
	}
	if ne.URL != "" {
		parts = append(parts, fmt.Sprintf("URL: %s", ne.URL))
	}
	if ne.Operation != "" {
		parts = append(parts, fmt.Sprintf("Operation: %s", ne.Operation))
	}
	if ne.HTTPStatus != 0 {
		parts = append(parts, fmt.Sprintf("HTTP Status: %d", ne.HTTPStatus))
	}
	parts = append(parts, fmt.Sprintf("Kind: %s", ne.Kind), fmt.Sprintf("ID: %s", ne.ID))

	return strings.Join(parts, " | ")
}

// Unwrap returns the underlying cause for error wrapping support
func (ne *NewsError) Unwrap() error {
	return ne.Cause
}

// NewNewsError creates a new NewsError with basic information
func NewNewsError(kind ErrorKind, message string) *NewsError {
	id, _ := gonanoid.New() // Generate unique correlation ID

	return &NewsError{
		ID:         id,
		Timestamp:  time.Now().UTC(),
		Kind:       kind,
		Message:    message,
		Suggestion: getSuggestionForErrorKind(kind),
	}
}

// NewNewsErrorWithCause creates a new NewsError wrapping an existing error
func NewNewsErrorWithCause(kind ErrorKind, message string, cause error) *NewsError {
	ne := NewNewsError(kind, message)
	ne.Cause = cause
	return ne
}

// WithURL adds URL context to the error
func (ne *NewsError) WithURL(url string) *NewsError {
	ne.URL = url
	return ne
}

// WithOperation adds operation context to the error
func (ne *NewsError) WithOperation(operation string) *NewsError {
	ne.Operation = operation
	return ne
}

// WithComponent adds component context to the error
func (ne *NewsError) WithComponent(component string) *NewsError {
	ne.Component = component
	return ne
}

// WithHTTPStatus adds the upstream HTTP status code to the error
func (ne *NewsError) WithHTTPStatus(status int) *NewsError {
	ne.HTTPStatus = status
	return ne
}

// IsInvalidArgument reports whether err is a NewsError in the invalid-argument category
func IsInvalidArgument(err error) bool {
	return categoryOf(err) == CategoryInvalidArgument
}

// IsFetchError reports whether err is a NewsError in the fetch-error category
func IsFetchError(err error) bool {
	return categoryOf(err) == CategoryFetchError
}

// IsNotFound reports whether err is a NewsError in the not-found category
func IsNotFound(err error) bool {
	return categoryOf(err) == CategoryNotFound
}

func categoryOf(err error) Category {
	var ne *NewsError
	if errors.As(err, &ne) {
		return ne.Kind.Category()
	}
	return ""
}

// getSuggestionForErrorKind returns actionable suggestions based on error kind
func getSuggestionForErrorKind(kind ErrorKind) string {
	suggestions := map[ErrorKind]string{
		ErrorKindInvalidTopic:     "Use one of the supported topics; call list_topics to see them",
		ErrorKindEmptyQuery:       "Provide a non-empty search keyword",
		ErrorKindInvalidLimit:     "Provide a positive max_results value, or omit it for the default",
		ErrorKindInvalidURL:       "Check the URL format and ensure it's a valid HTTP/HTTPS URL",
		ErrorKindSchema:           "Check the tool's input schema for required fields and types",
		ErrorKindConfiguration:    "Review configuration parameters for correctness",
		ErrorKindTransport:        "Check transport configuration (stdio, http-with-sse)",
		ErrorKindTimeout:          "Check network connectivity or increase the timeout",
		ErrorKindConnectionFailed: "Verify Google News is reachable from this host",
		ErrorKindDNSResolution:    "Check DNS settings and verify the domain name resolves",
		ErrorKindHTTPClientError:  "Verify the generated feed URL is correct and accessible",
		ErrorKindHTTPServerError:  "The upstream server is experiencing issues, try again later",
		ErrorKindMalformedXML:     "The feed response was not valid XML; the upstream may be serving an error page",
		ErrorKindEmptyFeed:        "The feed response contained no parseable content",
		ErrorKindExtraction:       "The article page did not contain extractable text",
		ErrorKindUnknownTool:      "Call tools/list to see the registered tool names",
		ErrorKindUnknownResource:  "Call resources/list to see the available resource URIs",
		ErrorKindUnknownPrompt:    "Call prompts/list to see the available prompts",
		ErrorKindInternal:         "Internal server error occurred, check logs for details",
	}

	if suggestion, exists := suggestions[kind]; exists {
		return suggestion
	}

	return "Check the error details and try again"
}
