package api

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/incentivo/internal/domain/filter"
)

// criteriaFromQuery reads task filters from employee_id, type, start, end,
// pending and q.
func criteriaFromQuery(q url.Values) (filter.Criteria, error) {
	c := filter.Criteria{
		Type:  strings.TrimSpace(q.Get("type")),
		Start: strings.TrimSpace(q.Get("start")),
		End:   strings.TrimSpace(q.Get("end")),
		Query: q.Get("q"),
	}
	if raw := strings.TrimSpace(q.Get("employee_id")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter.Criteria{}, NewKind(KindBadRequest, "invalid employee_id "+strconv.Quote(raw))
		}
		c.EmployeeID = &id
	}
	if raw := strings.TrimSpace(q.Get("pending")); raw != "" {
		pending, err := strconv.ParseBool(raw)
		if err != nil {
			return filter.Criteria{}, NewKind(KindBadRequest, "invalid pending "+strconv.Quote(raw))
		}
		c.OnlyUnevaluated = pending
	}
	return c, nil
}
