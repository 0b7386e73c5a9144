// Package model provides helper functions for creating structured errors.
package model

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"syscall"
)

// CreateNetworkError creates a NewsError for network-related fetch failures
func CreateNetworkError(err error, feedURL string) *NewsError {
	kind := ErrorKindNetwork
	message := "Network error occurred"

	// Categorize the specific network error
	if err != nil {
		switch {
		case isTimeoutError(err):
			kind = ErrorKindTimeout
			message = "Request timed out"
		case isDNSError(err):
			kind = ErrorKindDNSResolution
			message = "DNS resolution failed"
		case isConnectionError(err):
			kind = ErrorKindConnectionFailed
			message = "Connection failed"
		}
	}

	return NewNewsErrorWithCause(kind, message, err).
		WithURL(feedURL).
		WithOperation("fetch_feed").
		WithComponent("http_client")
}

// CreateHTTPError creates a NewsError for non-2xx upstream responses
func CreateHTTPError(resp *http.Response, feedURL string) *NewsError {
	var kind ErrorKind
	var message string

	status := resp.StatusCode

	switch {
	case status >= 400 && status < 500:
		kind = ErrorKindHTTPClientError
		message = fmt.Sprintf("Client error: %s", resp.Status)
	case status >= 500:
		kind = ErrorKindHTTPServerError
		message = fmt.Sprintf("Server error: %s", resp.Status)
	default:
		kind = ErrorKindHTTP
		message = fmt.Sprintf("HTTP error: %s", resp.Status)
	}

	return NewNewsError(kind, message).
		WithURL(feedURL).
		WithOperation("fetch_feed").
		WithComponent("http_client").
		WithHTTPStatus(status)
}

// CreateParsingError creates a NewsError for feed parsing failures
func CreateParsingError(err error, feedURL string) *NewsError {
	kind := ErrorKindParsing
	message := "Failed to parse feed"

	if err != nil {
		errStr := strings.ToLower(err.Error())

		switch {
		case strings.Contains(errStr, "xml"):
			kind = ErrorKindMalformedXML
			message = "Feed contains malformed XML"
		case strings.Contains(errStr, "empty") || strings.Contains(errStr, "no content"),
			strings.Contains(errStr, "unknown feed type"):
			kind = ErrorKindEmptyFeed
			message = "Feed response contained no parseable feed content"
		}
	}

	return NewNewsErrorWithCause(kind, message, err).
		WithURL(feedURL).
		WithOperation("parse_feed").
		WithComponent("feed_parser")
}

// isTimeoutError checks if the error is related to timeouts
func isTimeoutError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, keyword := range []string{"timeout", "deadline exceeded", "timed out"} {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}

	return false
}

// isDNSError checks if the error is related to DNS resolution
func isDNSError(err error) bool {
	if err == nil {
		return false
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	dnsKeywords := []string{
		"no such host", "dns", "name resolution", "hostname",
		"name or service not known", "nodename nor servname provided",
	}
	for _, keyword := range dnsKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}

	return false
}

// isConnectionError checks if the error is related to connection issues
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		var errno syscall.Errno
		if errors.As(opErr.Err, &errno) {
			switch errno {
			case syscall.ECONNREFUSED, syscall.ECONNRESET, syscall.ECONNABORTED,
				syscall.EHOSTUNREACH, syscall.ENETUNREACH:
				return true
			}
		}
	}

	errStr := strings.ToLower(err.Error())
	connKeywords := []string{
		"connection refused", "connection reset", "connection aborted",
		"host unreachable", "network unreachable", "no route to host",
	}
	for _, keyword := range connKeywords {
		if strings.Contains(errStr, keyword) {
			return true
		}
	}

	return false
}
