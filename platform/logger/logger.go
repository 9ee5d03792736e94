// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// SessionIDKey is the context key for the widget session ID
	SessionIDKey contextKey = "session_id"
	// BookingRefKey is the context key for the booking reference
	BookingRefKey contextKey = "booking_ref"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
// Supports request_id, session_id, and booking_ref from context.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = newLogger.WithRequestID(requestID)
	}

	if sessionID, ok := ctx.Value(SessionIDKey).(string); ok && sessionID != "" {
		newLogger = &Logger{
			Logger: newLogger.With(slog.String("session_id", sessionID)),
		}
	}

	if bookingRef, ok := ctx.Value(BookingRefKey).(string); ok && bookingRef != "" {
		newLogger = &Logger{
			Logger: newLogger.With(slog.String("booking_ref", bookingRef)),
		}
	}

	return newLogger
}

// WithRequestID returns a logger with request ID
func (l *Logger) WithRequestID(requestID string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("request_id", requestID)),
	}
}

// WithBookingRef returns a logger with the booking reference
func (l *Logger) WithBookingRef(bookingRef string) *Logger {
	return &Logger{
		Logger: l.With(slog.String("booking_ref", bookingRef)),
	}
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// UpstreamError logs a failed call to an external collaborator with enough
// context to diagnose without retrying blindly.
func (l *Logger) UpstreamError(collaborator string, status int, body string, err error) {
	attrs := []any{
		slog.String("collaborator", collaborator),
		slog.Int("status", status),
		slog.String("body", body),
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	l.Error("upstream_error", attrs...)
}

// DeliveryOutcome logs the result of a lead webhook delivery attempt.
func (l *Logger) DeliveryOutcome(bookingRef, eventType string, status int, succeeded bool) {
	if succeeded {
		l.Info("lead_delivery",
			slog.String("booking_ref", bookingRef),
			slog.String("event_type", eventType),
			slog.Int("status", status),
			slog.Bool("succeeded", succeeded),
		)
		return
	}
	l.Warn("lead_delivery",
		slog.String("booking_ref", bookingRef),
		slog.String("event_type", eventType),
		slog.Int("status", status),
		slog.Bool("succeeded", succeeded),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
