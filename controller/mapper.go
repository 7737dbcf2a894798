package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathId reads an integer path parameter, writing a 400 itself when the
// value is malformed. Callers bail out on ok == false.
func pathId(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

func queryId(c *gin.Context, name string) *int {
	value, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return nil
	}
	return &value
}
