package response

import "github.com/gin-gonic/gin"

// errorBody is the error half of the envelope. Details carries the
// field->rule map from validation failures and is omitted otherwise.
type errorBody struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   errorBody{Code: code, Message: message},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details interface{}) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   errorBody{Code: code, Message: message, Details: details},
	})
}
