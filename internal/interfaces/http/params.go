package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
)

// paramID id positivo del path.
func paramID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("id", "id inválido")
	}
	return id, nil
}

// pageQuery lee page, limit y search. Normalize corrige los valores fuera de rango en el caso de uso.
func pageQuery(c *fiber.Ctx) dto.PageQuery {
	return dto.PageQuery{
		Page:   c.QueryInt("page", 1),
		Limit:  c.QueryInt("limit", dto.DefaultLimit),
		Search: strings.TrimSpace(c.Query("search")),
	}
}

// queryInt64 parámetro opcional; vacío o inválido devuelve nil.
func queryInt64(c *fiber.Ctx, keys ...string) *int64 {
	for _, k := range keys {
		s := strings.TrimSpace(c.Query(k))
		if s == "" {
			continue
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil || v <= 0 {
			return nil
		}
		return &v
	}
	return nil
}

func dateRangeQuery(c *fiber.Ctx) dto.DateRangeQuery {
	return dto.DateRangeQuery{
		DateFrom: firstQuery(c, "date_from", "dateFrom"),
		DateTo:   firstQuery(c, "date_to", "dateTo"),
	}
}

func firstQuery(c *fiber.Ctx, keys ...string) string {
	for _, k := range keys {
		if s := strings.TrimSpace(c.Query(k)); s != "" {
			return s
		}
	}
	return ""
}
