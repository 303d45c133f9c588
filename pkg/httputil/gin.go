package httputil

import "github.com/gin-gonic/gin"

// TraceIDKey はgin.ContextにトレースIDを格納するキー。
const TraceIDKey = "trace_id"

// WriteError はProblemDetailをレスポンスとして書き込む。
// instanceにはリクエストパス、traceIdにはコンテキストのトレースIDを補う。
func WriteError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.JSON(problem.Status, decorate(c, problem))
}

// AbortWithError はWriteErrorと同じ内容を書き込み、後続ハンドラを中断する。
func AbortWithError(c *gin.Context, problem *ProblemDetail) {
	c.Header("Content-Type", ContentType)
	c.AbortWithStatusJSON(problem.Status, decorate(c, problem))
}

func decorate(c *gin.Context, problem *ProblemDetail) *ProblemDetail {
	p := *problem
	if p.Instance == "" && c.Request != nil {
		p.Instance = c.Request.URL.Path
	}
	if p.TraceID == "" {
		p.TraceID = c.GetString(TraceIDKey)
	}
	return &p
}
