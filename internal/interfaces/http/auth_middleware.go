package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/jwt"
)

// LocalIdentity clave en c.Locals con la identidad de la sesión.
const LocalIdentity = "identity"

// AuthMiddleware acepta el token en la cookie de sesión o en `Authorization: Bearer`.
// La cookie tiene prioridad. La identidad queda en c.Locals(LocalIdentity).
func AuthMiddleware(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := ""
		if cookieName != "" {
			tokenString = strings.TrimSpace(c.Cookies(cookieName))
		}
		if tokenString == "" {
			authHeader := c.Get(fiber.HeaderAuthorization)
			if authHeader == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeUnauthorized, Message: "sesión requerida"})
			}
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeUnauthorized, Message: "formato: Bearer <token>"})
			}
			tokenString = strings.TrimSpace(parts[1])
			if tokenString == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeUnauthorized, Message: "token vacío"})
			}
		}
		id, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeUnauthorized, Message: "token inválido o expirado"})
		}
		c.Locals(LocalIdentity, id)
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles indicados.
// Debe ir después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeUnauthorized, Message: "el token no incluye rol"})
		}
		if _, ok := allowed[role]; !ok {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: "el rol " + role + " no tiene acceso a este recurso"})
		}
		return c.Next()
	}
}

// GetIdentity identidad de la sesión; nil fuera de rutas protegidas.
func GetIdentity(c *fiber.Ctx) *jwt.Identity {
	id, _ := c.Locals(LocalIdentity).(*jwt.Identity)
	return id
}

// GetUserID id del usuario autenticado, 0 si no hay sesión.
func GetUserID(c *fiber.Ctx) int64 {
	if id := GetIdentity(c); id != nil {
		return id.UserID
	}
	return 0
}

// GetRole rol del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	if id := GetIdentity(c); id != nil {
		return id.Role
	}
	return ""
}
