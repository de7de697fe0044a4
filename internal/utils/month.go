package utils

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
)

// ParseMonth reads the optional "month" query parameter ("2006-01"). Absent
// means the current month.
func ParseMonth(ctx *gin.Context) (time.Time, error) {
	monthStr := ctx.Query("month")

	if monthStr == "" {
		return time.Now(), nil
	}

	anchor, err := time.Parse("2006-01", monthStr)

	if err != nil {
		return time.Time{}, errors.New("Invalid month, expected YYYY-MM")
	}

	return anchor, nil
}
