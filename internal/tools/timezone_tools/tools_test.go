package timezone_tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"calmcp/internal/eventkit"
	"calmcp/internal/server"
	"calmcp/internal/timezone"
)

func newTestServerContext(t *testing.T, ctx context.Context) *server.ServerContext {
	t.Helper()
	sc, err := server.NewServerContext(ctx, eventkit.NewMemStore(), nil)
	if err != nil {
		t.Fatalf("failed to create server context: %v", err)
	}
	t.Cleanup(func() { _ = sc.Shutdown() })
	return sc
}

func requestWithArgs(args map[string]interface{}) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if result == nil {
		t.Fatal("expected result, got nil")
	}
	if len(result.Content) == 0 {
		t.Fatal("expected result content, got none")
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestHandleCurrentTime_DefaultsToUTC(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t, ctx)

	handler := handleCurrentTime(sc)
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var got timezone.CurrentTimeResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if got.Timezone != "UTC" {
		t.Errorf("timezone = %q, expected UTC", got.Timezone)
	}
	if got.Timestamp == 0 {
		t.Error("expected non-zero timestamp")
	}
}

func TestHandleCurrentTime_UnknownZone(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t, ctx)

	handler := handleCurrentTime(sc)
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{
		"timezone": "Mars/Olympus_Mons",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for unknown timezone")
	}
	if !strings.Contains(resultText(t, result), "unknown timezone") {
		t.Errorf("unexpected error message: %s", resultText(t, result))
	}
}

func TestHandleConvertTime(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t, ctx)

	handler := handleConvertTime(sc)
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{
		"datetime_str":  "2024-12-25T14:30:00",
		"from_timezone": "America/New_York",
		"to_timezone":   "Asia/Tokyo",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var got timezone.ConversionResult
	if err := json.Unmarshal([]byte(resultText(t, result)), &got); err != nil {
		t.Fatalf("failed to decode result: %v", err)
	}
	if got.FromTimezone != "America/New_York" || got.ToTimezone != "Asia/Tokyo" {
		t.Errorf("unexpected zones: %+v", got)
	}
	// 14:30 EST is 04:30 the next day in Tokyo.
	if !strings.HasPrefix(got.ConvertedDatetime, "2024-12-26T04:30:00") {
		t.Errorf("converted_datetime = %q", got.ConvertedDatetime)
	}
}

func TestHandleConvertTime_MissingParams(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t, ctx)
	handler := handleConvertTime(sc)

	tests := []struct {
		name string
		args map[string]interface{}
	}{
		{
			name: "missing datetime_str",
			args: map[string]interface{}{
				"from_timezone": "UTC",
				"to_timezone":   "UTC",
			},
		},
		{
			name: "missing from_timezone",
			args: map[string]interface{}{
				"datetime_str": "2024-12-25T14:30:00",
				"to_timezone":  "UTC",
			},
		},
		{
			name: "missing to_timezone",
			args: map[string]interface{}{
				"datetime_str":  "2024-12-25T14:30:00",
				"from_timezone": "UTC",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := handler(ctx, requestWithArgs(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if !result.IsError {
				t.Error("expected error result for missing parameter")
			}
		})
	}
}

func TestHandleConvertTime_InvalidDatetime(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t, ctx)

	handler := handleConvertTime(sc)
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{
		"datetime_str":  "next tuesday",
		"from_timezone": "UTC",
		"to_timezone":   "UTC",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result for invalid datetime")
	}
	if !strings.Contains(resultText(t, result), "invalid datetime string") {
		t.Errorf("unexpected error message: %s", resultText(t, result))
	}
}

func TestHandleListTimezones(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t, ctx)

	handler := handleListTimezones(sc)
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{
		"region": "Europe",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected error result: %s", resultText(t, result))
	}

	var zones []string
	if err := json.Unmarshal([]byte(resultText(t, result)), &zones); err != nil {
		t.Fatalf("failed to decode zones: %v", err)
	}
	if len(zones) == 0 {
		t.Fatal("expected European zones")
	}
	for _, z := range zones {
		if !strings.HasPrefix(z, "Europe/") {
			t.Errorf("zone %q does not match region filter", z)
		}
	}
}

func TestHandleListTimezones_UnknownRegion(t *testing.T) {
	ctx := context.Background()
	sc := newTestServerContext(t, ctx)

	handler := handleListTimezones(sc)
	result, err := handler(ctx, requestWithArgs(map[string]interface{}{
		"region": "Atlantis",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if resultText(t, result) != "[]" {
		t.Errorf("expected empty array for unknown region, got %s", resultText(t, result))
	}
}
