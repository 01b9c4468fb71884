package middleware

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

const (
	callerHeader = "X-Caller-Principal"
	callerLocal  = "caller_principal"
)

// Principal copies the calling principal from the request header into the
// request locals so handlers can attribute operations to a caller.
func Principal() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(callerLocal, c.Get(callerHeader))
		return c.Next()
	}
}

// RequireCaller rejects requests that carry no calling principal. Applied to
// every mutating route; read-only queries stay open.
func RequireCaller() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if Caller(c) == "" {
			return fiber.NewError(http.StatusUnauthorized, "missing "+callerHeader+" header")
		}
		return c.Next()
	}
}

// Caller returns the calling principal for the request, empty when absent.
func Caller(c *fiber.Ctx) string {
	caller, _ := c.Locals(callerLocal).(string)
	return caller
}
