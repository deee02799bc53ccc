package auth

import (
	"sort"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"bisig_backend/internals/constants"
	helper "bisig_backend/internals/helpers"
)

// Rule says who may call one route. Public rules skip authentication.
type Rule struct {
	Public  bool
	Roles   []string
	Message string
}

// Policy maps "METHOD /full/route/pattern" to its rule.
type Policy map[string]Rule

func Public() Rule { return Rule{Public: true} }

func Allow(message string, roles ...string) Rule {
	return Rule{Roles: roles, Message: message}
}

// RouteKey normalises a method and registered path into a policy key.
func RouteKey(method, path string) string {
	method = strings.ToUpper(method)
	if method == fiber.MethodHead {
		method = fiber.MethodGet
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return method + " " + path
}

// Guard authenticates the caller (unless the rule is public) and checks the
// caller's role against the rule registered for the matched route. Routes
// absent from the policy are denied.
func Guard(db *gorm.DB, policy Policy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := RouteKey(c.Method(), c.Route().Path)
		rule, ok := policy[key]
		if !ok {
			zap.L().Warn("route without access policy", zap.String("route", key))
			return helper.ErrForbidden("Forbidden - route has no access policy")
		}
		if rule.Public {
			return c.Next()
		}

		if err := Authenticate(c, db); err != nil {
			return err
		}

		role := helper.GetUserRole(c)
		if !constants.Contains(rule.Roles, role) {
			msg := rule.Message
			if msg == "" {
				msg = "Forbidden - you are not allowed to access this resource"
			}
			return helper.ErrForbidden(msg)
		}
		return c.Next()
	}
}

// Missing returns the /api routes of app that have no policy entry.
func (p Policy) Missing(app *fiber.App) []string {
	seen := map[string]struct{}{}
	for _, r := range app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api") {
			continue
		}
		if r.Method == fiber.MethodHead || r.Method == fiber.MethodOptions {
			continue
		}
		key := RouteKey(r.Method, r.Path)
		if _, ok := p[key]; !ok {
			seen[key] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
