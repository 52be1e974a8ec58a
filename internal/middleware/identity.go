package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// requestUserID renders the authenticated user's ID as a string for
// rate-limit and cache key building.  JWTAuth stores the token's
// numeric "sub" claim under "user_id"; the jwt library decodes it as
// float64.  Unauthenticated requests share the "anon" identity.
func requestUserID(c echo.Context) string {
	switch t := c.Get("user_id").(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	}
	return "anon"
}
