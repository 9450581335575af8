// Package ctx provides a single request context for bistro handlers.
//
// A handler receives *Context instead of (http.ResponseWriter, *http.Request):
//
//	func (h *MenuController) Show(c *ctx.Context) {
//	    items, err := h.menu.ByCategory(c.Context(), c.Param("category"))
//	    ...
//	    c.Success(items)
//	}
//
//	r.Get("/menu/{category}", "menu.category", ctx.Wrap(h.Show))
package ctx

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/bistrobuzz/bistro/pkg/auth"
	"github.com/bistrobuzz/bistro/pkg/bind"
	"github.com/bistrobuzz/bistro/pkg/logger"
	"github.com/bistrobuzz/bistro/pkg/response"
	"github.com/bistrobuzz/bistro/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value, "" when absent.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Email is the authenticated caller's email, "" for anonymous requests.
func (c *Context) Email() string {
	return auth.EmailFromCtx(c.R.Context())
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and validates it. On failure the
// 400 or 422 response is already written and false is returned.
//
//	var input models.MenuItem
//	if !c.BindJSON(&input) {
//	    return
//	}
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.W, c.R, dest)
	if err != nil {
		c.BadRequest(err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// JSON writes v as the envelope data with the given status.
func (c *Context) JSON(code int, v any) {
	c.status = code
	response.Write(c.W, code, response.Envelope{Status: code, Data: v})
}

func (c *Context) Success(data any) { c.JSON(http.StatusOK, data) }

func (c *Context) Created(data any) { c.JSON(http.StatusCreated, data) }

// Message sends a 200 envelope carrying only a message.
func (c *Context) Message(message string) {
	c.status = http.StatusOK
	response.Write(c.W, http.StatusOK, response.Envelope{Status: http.StatusOK, Message: message})
}

// Error sends an error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

func (c *Context) ValidationError(errs map[string]string) {
	c.status = http.StatusUnprocessableEntity
	response.ValidationError(c.W, errs)
}

func (c *Context) BadRequest(message string) { c.Error(http.StatusBadRequest, message) }

func (c *Context) Unauthorized() {
	c.status = http.StatusUnauthorized
	response.Unauthorized(c.W)
}

func (c *Context) Forbidden() {
	c.status = http.StatusForbidden
	response.Forbidden(c.W)
}

func (c *Context) NotFound() {
	c.status = http.StatusNotFound
	response.NotFound(c.W)
}

// Fail logs err with the request logger and sends a generic 500.
func (c *Context) Fail(msg string, err error) {
	logger.WithCtx(c.R.Context()).Error(msg, "error", err, "path", c.R.URL.Path)
	c.status = http.StatusInternalServerError
	response.InternalError(c.W)
}

// WrittenStatus returns the status written so far, 0 if none.
func (c *Context) WrittenStatus() int { return c.status }
