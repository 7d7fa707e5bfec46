package handlers

import (
	"fmt"
	"net/http"
	"time"

	"sales-dashboard/internal/services"
)

const dateParamLayout = "2006-01-02"

// parseCriteria reads the repeatable filter params (product_line, country,
// status, quarter) and the optional start/end dates from the query string.
// Absent params leave their dimension unrestricted.
func parseCriteria(r *http.Request) (services.Criteria, error) {
	q := r.URL.Query()

	c := services.Criteria{
		ProductLines: q["product_line"],
		Countries:    q["country"],
		Statuses:     q["status"],
		Quarters:     q["quarter"],
	}

	if s := q.Get("start"); s != "" {
		t, err := time.Parse(dateParamLayout, s)
		if err != nil {
			return services.Criteria{}, fmt.Errorf("invalid start date %q", s)
		}
		c.Start = t
	}
	if s := q.Get("end"); s != "" {
		t, err := time.Parse(dateParamLayout, s)
		if err != nil {
			return services.Criteria{}, fmt.Errorf("invalid end date %q", s)
		}
		c.End = t
	}

	return c, nil
}
