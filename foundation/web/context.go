package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the gin request state plus a context.Context that
// middleware may extend (auth claims live there).
type Context struct {
	*gin.Context
	Ctx context.Context

	paramErrs []error
	queryErrs []error
}

func NewContext(c *gin.Context) *Context {
	return &Context{Context: c, Ctx: c.Request.Context()}
}

// BindFunc binds the JSON/form body into dst and verifies the listed
// struct fields were actually provided.
func (c *Context) BindFunc(dst interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(dst); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request body"), http.StatusBadRequest)
	}

	fields := map[string]string{}
	v := reflect.ValueOf(dst).Elem()
	for _, name := range requiredFields {
		f := v.FieldByName(name)
		if !f.IsValid() {
			continue
		}
		if f.IsZero() {
			fields[name] = "required field"
		}
	}
	if len(fields) > 0 {
		return &Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: fields,
		}
	}

	return nil
}

// GetParam reads a path parameter converted to the requested kind. The
// conversion error, if any, is reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, errors.Errorf("param %q must be an integer", name))
			return 0
		}
		return n
	default:
		return value
	}
}

func (c *Context) ValidParam() error {
	if len(c.paramErrs) > 0 {
		return NewRequestError(c.paramErrs[0], http.StatusBadRequest)
	}
	return nil
}

// GetQueryFunc reads an optional query parameter, returning a typed
// pointer or a typed nil when the parameter is absent.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)

	switch kind {
	case reflect.Int:
		if !ok {
			return (*int)(nil)
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, errors.Errorf("query %q must be an integer", name))
			return (*int)(nil)
		}
		return &n
	case reflect.Bool:
		if !ok {
			return (*bool)(nil)
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, errors.Errorf("query %q must be a boolean", name))
			return (*bool)(nil)
		}
		return &b
	default:
		if !ok {
			return (*string)(nil)
		}
		return &value
	}
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrs) > 0 {
		return NewRequestError(c.queryErrs[0], http.StatusBadRequest)
	}
	return nil
}

func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError writes the error to the client. Request errors keep their
// message; anything else is reported as a generic internal error so driver
// details never reach the client.
func (c *Context) RespondError(err error) error {
	if err == nil {
		return nil
	}

	var webErr *Error
	if errors.As(err, &webErr) {
		body := gin.H{
			"error":  webErr.Err.Error(),
			"status": false,
		}
		if len(webErr.Fields) > 0 {
			body["fields"] = webErr.Fields
		}
		if webErr.Status >= http.StatusInternalServerError {
			fmt.Println("internal error:", webErr.Err)
			body["error"] = "internal server error"
		}
		c.JSON(webErr.Status, body)
		return nil
	}

	fmt.Println("internal error:", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":  "internal server error",
		"status": false,
	})
	return nil
}
