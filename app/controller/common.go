// Package controller holds the storefront's HTTP handlers.
package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"vitrina/logger"
	"vitrina/models"
	"vitrina/service"
	"vitrina/templates"
)

const (
	sessionCookie = "vitrina_session"
	cartCookie    = "vitrina_cart"
	cookieMaxAge  = 365 * 24 * time.Hour
)

// Layout is the data every page header needs
type Layout struct {
	Title string
	Menu  []models.MenuItem
	Query string
}

func newLayout(ctx context.Context, menus service.MenuServiceInterface, title, query string) Layout {
	l := Layout{Title: title, Query: query}
	if menus != nil {
		l.Menu = menus.Items(ctx)
	}
	return l
}

// sessionID returns the visitor id from its cookie, issuing a new one when
// the cookie is missing or malformed
func sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(sessionCookie); err == nil {
		if _, err := uuid.Parse(c.Value); err == nil {
			return c.Value
		}
	}
	id := uuid.NewString()
	setCookie(w, sessionCookie, id)
	return id
}

func setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1})
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs err under op and answers with the mapped status
func writeError(w http.ResponseWriter, op, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.L().Errorf("❌ %s: %s: %v", op, message, err)
	} else {
		logger.L().Warnf("⚠️ %s: %s: %v", op, message, err)
	}
	http.Error(w, fmt.Sprintf("%s: %v", message, err), status)
}

func writeJSON(w http.ResponseWriter, op string, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.L().Errorf("❌ %s: Error encoding response: %v", op, err)
	}
}

// renderPage renders into a buffer first so a template failure still
// yields a clean 500
func renderPage(w http.ResponseWriter, op, name string, data any) {
	var buf bytes.Buffer
	if err := templates.Render(&buf, name, data); err != nil {
		logger.L().Errorf("❌ %s: Error rendering %s: %v", op, name, err)
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.L().Errorf("❌ %s: Error writing response: %v", op, err)
	}
}

// wantsJSON reports whether the client asked for JSON with ?format=json or
// an Accept header
func wantsJSON(r *http.Request) bool {
	if strings.EqualFold(r.URL.Query().Get("format"), "json") {
		return true
	}
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html")
}

func track(a service.AnalyticsServiceInterface, r *http.Request, session, kind, handle string) {
	if a == nil {
		return
	}
	a.Track(models.AnalyticsEvent{
		SessionID:      session,
		Kind:           kind,
		ResourceHandle: handle,
		Path:           r.URL.RequestURI(),
	})
}
