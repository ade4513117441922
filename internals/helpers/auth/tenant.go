// file: internals/helpers/auth/tenant.go
package auth

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys yang di-hydrate middleware AuthJWT.
const (
	LocUserID         = "user_id"
	LocOrganizationID = "organization_id"
)

// GetUserID mengambil user id terverifikasi dari token.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	s, _ := c.Locals(LocUserID).(string)
	id, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "user scope tidak ditemukan di token")
	}
	return id, nil
}

// ResolveOrganizationID mengambil :org_id dari path dan memastikan cocok
// dengan scope organisasi di token. Semua query downstream memakai hasil ini
// sebagai hard filter; tidak ada operasi lintas organisasi.
func ResolveOrganizationID(c *fiber.Ctx) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params("org_id"))
	if raw == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "org_id is required")
	}
	pathOrg, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "org_id invalid")
	}

	s, _ := c.Locals(LocOrganizationID).(string)
	tokenOrg, err := uuid.Parse(strings.TrimSpace(s))
	if err != nil || tokenOrg == uuid.Nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "organization scope tidak ditemukan di token")
	}
	if tokenOrg != pathOrg {
		return uuid.Nil, fiber.NewError(fiber.StatusForbidden, "organization scope mismatch")
	}
	return pathOrg, nil
}

// ParseUUIDParam membaca path param sebagai UUID.
func ParseUUIDParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	raw := strings.TrimSpace(c.Params(name))
	if raw == "" {
		return uuid.Nil, fmt.Errorf("%s is required", name)
	}
	return uuid.Parse(raw)
}
