package response

import "github.com/gin-gonic/gin"

// Error sends the flat error shape every client of this API expects:
// {"error": "<message>"}.
func Error(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// Message sends a plain confirmation body: {"message": "<text>"}.
func Message(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}
