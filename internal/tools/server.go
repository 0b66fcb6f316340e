package tools

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/rs/zerolog/log"
)

// Request is one line-delimited JSON call from the host process.
type Request struct {
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args,omitempty"`
}

// Response mirrors the request's tool name and carries either a result or an
// error message, never both.
type Response struct {
	Tool   string          `json:"tool"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// listToolsName is handled by the server itself rather than the registry.
const listToolsName = "list_tools"

// Serve reads line-delimited JSON requests from in and writes one response
// per request to out, until EOF or context cancellation. Tool failures are
// reported in the response; only I/O errors terminate the loop.
func Serve(ctx context.Context, r *Registry, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	enc := json.NewEncoder(out)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			if err := enc.Encode(Response{Error: "malformed request: " + err.Error()}); err != nil {
				return err
			}
			continue
		}

		resp := Response{Tool: req.Tool}
		switch {
		case req.Tool == listToolsName:
			specs, err := json.Marshal(r.Specs())
			if err != nil {
				resp.Error = err.Error()
			} else {
				resp.Result = specs
			}
		default:
			result, err := r.Call(ctx, req.Tool, req.Args)
			if err != nil {
				log.Warn().Err(err).Str("tool", req.Tool).Msg("tool call failed")
				resp.Error = err.Error()
			} else {
				resp.Result = result
			}
		}
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
