package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const queryDateLayout = "2006-01-02"

// parseDateQuery reads an optional YYYY-MM-DD query parameter. A missing
// parameter yields a zero time; an unparsable one writes a 400 and
// returns ok=false.
func parseDateQuery(c *gin.Context, name string) (time.Time, bool) {
	value := c.Query(name)
	if value == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(queryDateLayout, value)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + " date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return t, true
}
