package httputil

import (
	"encoding/json"
	"testing"

	"github.com/valyala/fasthttp"
)

func TestWriteSuccess(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}

	WriteSuccess(ctx, map[string]string{"key": "value"})

	if ctx.Response.StatusCode() != fasthttp.StatusOK {
		t.Errorf("status = %d, want 200", ctx.Response.StatusCode())
	}

	var resp Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Status != "success" {
		t.Errorf("status field = %q, want success", resp.Status)
	}
	if resp.Message != "" {
		t.Errorf("message = %q, want empty", resp.Message)
	}
	if resp.Data == nil {
		t.Error("expected data to be present")
	}
}

func TestWriteErrorResponse(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}

	WriteErrorResponse(ctx, "something failed", fasthttp.StatusBadRequest)

	if ctx.Response.StatusCode() != fasthttp.StatusBadRequest {
		t.Errorf("status = %d, want 400", ctx.Response.StatusCode())
	}

	var resp Response
	if err := json.Unmarshal(ctx.Response.Body(), &resp); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if resp.Status != "error" || resp.Message != "something failed" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.Data != nil {
		t.Error("error responses must not carry data")
	}
}

func TestWriteSuccessWithStatus(t *testing.T) {
	ctx := &fasthttp.RequestCtx{}

	WriteSuccessWithStatus(ctx, nil, fasthttp.StatusCreated)

	if ctx.Response.StatusCode() != fasthttp.StatusCreated {
		t.Errorf("status = %d, want 201", ctx.Response.StatusCode())
	}
}
