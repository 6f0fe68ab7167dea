package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNavigation represents page-load or navigation failures
	ErrorTypeNavigation ErrorType = "navigation"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypePayload represents malformed or missing structured payloads
	ErrorTypePayload ErrorType = "payload"
	// ErrorTypeRateLimit represents rate limiting by the remote site
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// ScrapeError represents a scraper-specific error
type ScrapeError struct {
	Type    ErrorType
	Site    string
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *ScrapeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %s - %v", e.Type, e.Site, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Site, e.Message)
}

// Unwrap returns the underlying error
func (e *ScrapeError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether the error should abort the whole search run.
// Nothing a single site does is fatal; only configuration errors are.
func (e *ScrapeError) IsFatal() bool {
	return e.Type == ErrorTypeConfiguration
}

// IsRateLimit reports whether err is a rate-limit ScrapeError
func IsRateLimit(err error) bool {
	var scrapeErr *ScrapeError
	return stderrors.As(err, &scrapeErr) && scrapeErr.Type == ErrorTypeRateLimit
}

// New creates a new ScrapeError
func New(errType ErrorType, site, message string, err error) *ScrapeError {
	return &ScrapeError{
		Type:    errType,
		Site:    site,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNavigation creates a new navigation error
func NewNavigation(site, message string, err error) *ScrapeError {
	return New(ErrorTypeNavigation, site, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(site, message string, err error) *ScrapeError {
	return New(ErrorTypeParsing, site, message, err)
}

// NewPayload creates a new structured-payload error
func NewPayload(site, message string, err error) *ScrapeError {
	return New(ErrorTypePayload, site, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(site string, retryAfter string) *ScrapeError {
	message := "rate limited"
	if retryAfter != "" {
		message = fmt.Sprintf("rate limited; retry after %s", retryAfter)
	}
	return New(ErrorTypeRateLimit, site, message, nil)
}

// NewCache creates a new cache error
func NewCache(site, message string, err error) *ScrapeError {
	return New(ErrorTypeCache, site, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(site, message string, err error) *ScrapeError {
	return New(ErrorTypePublisher, site, message, err)
}

// NewValidation creates a new validation error
func NewValidation(site, message string) *ScrapeError {
	return New(ErrorTypeValidation, site, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *ScrapeError {
	return New(ErrorTypeConfiguration, "", message, err)
}
