package auth

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/spec-kit/leads-service/pkg/util"
)

const adminKey = "auth_admin"

// AdminMiddleware requires HTTP Basic credentials accepted by the gate on every request.
type AdminMiddleware struct {
	gate *AdminGate
}

// NewAdminMiddleware constructs middleware.
func NewAdminMiddleware(gate *AdminGate) *AdminMiddleware {
	return &AdminMiddleware{gate: gate}
}

// Handle enforces admin credentials for protected routes.
func (m *AdminMiddleware) Handle(c *fiber.Ctx) error {
	username, password, ok := parseBasicAuth(c.Get(fiber.HeaderAuthorization))
	if !ok {
		c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="admin"`)
		return apperrors.NewUnauthorized("missing credentials")
	}
	if err := m.gate.Authorize(username, password); err != nil {
		c.Set(fiber.HeaderWWWAuthenticate, `Basic realm="admin"`)
		return err
	}
	c.Locals(adminKey, username)
	return c.Next()
}

// AdminFromContext returns the username that passed the gate.
func AdminFromContext(c *fiber.Ctx) (string, bool) {
	username, ok := c.Locals(adminKey).(string)
	return username, ok
}

func parseBasicAuth(header string) (string, string, bool) {
	const prefix = "basic "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if err != nil {
		return "", "", false
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return "", "", false
	}
	return username, password, true
}
