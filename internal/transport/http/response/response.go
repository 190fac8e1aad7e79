package response

import "github.com/gin-gonic/gin"

// 错误一律 {message}，500 额外带 error 明细

func Message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func AbortMessage(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

func Internal(c *gin.Context, msg string, err error) {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	c.JSON(500, gin.H{"message": msg, "error": detail})
}
