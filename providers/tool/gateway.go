package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"schedbot/providers/ai"
	"schedbot/providers/observability"
)

// Gateway dispatches named, schema-described tools from a [Catalog] and
// normalizes every outcome into an [ai.ToolResult]. It never returns a Go
// error and never panics: unknown tool names, malformed argument JSON, and
// tool execution failures all become the err variant of the envelope, so
// callers treat any non-success outcome identically.
type Gateway struct {
	catalog *Catalog
	obs     observability.Logger
}

// NewGateway creates a gateway over the given catalog. obs may be nil, in
// which case failures are reported only through the returned envelope.
func NewGateway(catalog *Catalog, obs observability.Logger) *Gateway {
	return &Gateway{catalog: catalog, obs: obs}
}

// Invoke looks up toolName in the catalog and executes it with argumentsJSON.
// The success payload carries the tool's decoded JSON output; every failure
// carries a machine-readable code and a descriptive reason.
func (g *Gateway) Invoke(ctx context.Context, toolName string, argumentsJSON string) (result ai.ToolResult) {
	// A tool implementation that panics must not take the conversation down.
	defer func() {
		if r := recover(); r != nil {
			if g.obs != nil {
				g.obs.Error(ctx, "tool panicked",
					observability.String(observability.AttrToolName, toolName),
					observability.String("panic", fmt.Sprint(r)),
				)
			}
			result = ai.NewToolResultError(ai.ErrorToolExecutionFailed, fmt.Sprintf("tool %q panicked: %v", toolName, r))
		}
	}()

	t, ok := g.catalog.Get(toolName)
	if !ok {
		if g.obs != nil {
			g.obs.Warn(ctx, "unknown tool requested",
				observability.String(observability.AttrToolName, toolName))
		}
		return ai.NewToolResultError(ai.ErrorToolNotFound, fmt.Sprintf("unknown tool: %s", toolName))
	}

	if !json.Valid([]byte(argumentsJSON)) {
		return ai.NewToolResultError(ai.ErrorToolBadArguments, fmt.Sprintf("invalid tool arguments JSON for %s", toolName))
	}

	output, err := t.Call(ctx, argumentsJSON)
	if err != nil {
		if g.obs != nil {
			g.obs.Warn(ctx, "tool execution failed",
				observability.String(observability.AttrToolName, toolName),
				observability.Error(err),
			)
		}
		return ai.NewToolResultError(ai.ErrorToolExecutionFailed, err.Error())
	}

	var data interface{}
	if err := json.Unmarshal([]byte(output), &data); err != nil {
		// Call always returns marshaled JSON, so this is effectively
		// unreachable, but a broken envelope must still not escape as an error.
		return ai.NewToolResultError(ai.ErrorToolExecutionFailed, fmt.Sprintf("tool %s returned undecodable output: %v", toolName, err))
	}

	return ai.NewToolResultSuccess(data)
}
