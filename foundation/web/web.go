package web

import (
	"github.com/gin-gonic/gin"
)

// Handler is the signature every application handler implements. Errors
// returned here have already been written to the client by the handler
// itself; the returned value exists for middleware to observe.
type Handler func(c *Context) error

// Middleware wraps a handler with pre/post processing.
type Middleware func(Handler) Handler

type App struct {
	*gin.Engine
}

func NewApp() *App {
	return &App{Engine: gin.Default()}
}

func (a *App) handle(method, route string, handler Handler, middlewares ...Middleware) {
	// Middlewares are applied right to left so the first listed runs first.
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	h := handler
	a.Handle(method, route, func(c *gin.Context) {
		ctx := NewContext(c)
		if err := h(ctx); err != nil {
			_ = ctx.RespondError(err)
		}
	})
}

func (a *App) Get(route string, handler Handler, middlewares ...Middleware) {
	a.handle("GET", route, handler, middlewares...)
}

func (a *App) Post(route string, handler Handler, middlewares ...Middleware) {
	a.handle("POST", route, handler, middlewares...)
}

func (a *App) Put(route string, handler Handler, middlewares ...Middleware) {
	a.handle("PUT", route, handler, middlewares...)
}

func (a *App) Patch(route string, handler Handler, middlewares ...Middleware) {
	a.handle("PATCH", route, handler, middlewares...)
}

func (a *App) Delete(route string, handler Handler, middlewares ...Middleware) {
	a.handle("DELETE", route, handler, middlewares...)
}
