package httputil

import (
	"encoding/json"

	"github.com/valyala/fasthttp"
)

// Response is the uniform API envelope
type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	statusSuccess = "success"
	statusError   = "error"
)

// WriteSuccess writes a successful JSON response with HTTP 200
func WriteSuccess(ctx *fasthttp.RequestCtx, data interface{}) {
	WriteSuccessWithStatus(ctx, data, fasthttp.StatusOK)
}

// WriteSuccessWithStatus writes a successful JSON response with custom status code
func WriteSuccessWithStatus(ctx *fasthttp.RequestCtx, data interface{}, status int) {
	writeJSON(ctx, Response{Status: statusSuccess, Data: data}, status)
}

// WriteSuccessMessage writes a successful JSON response carrying only a message
func WriteSuccessMessage(ctx *fasthttp.RequestCtx, message string) {
	writeJSON(ctx, Response{Status: statusSuccess, Message: message}, fasthttp.StatusOK)
}

// WriteErrorResponse writes an error JSON response
func WriteErrorResponse(ctx *fasthttp.RequestCtx, message string, status int) {
	writeJSON(ctx, Response{Status: statusError, Message: message}, status)
}

// writeJSON writes JSON response to context
func writeJSON(ctx *fasthttp.RequestCtx, data interface{}, status int) {
	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)

	body, err := json.Marshal(data)
	if err != nil {
		ctx.SetStatusCode(fasthttp.StatusInternalServerError)
		ctx.SetBody([]byte(`{"status":"error","message":"failed to marshal response"}`))
		return
	}

	ctx.SetBody(body)
}
