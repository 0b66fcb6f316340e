package tools

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func echoRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	err := r.Register(Definition{
		Name:        "echo",
		Description: "Echo the arguments back",
		Schema:      json.RawMessage(`{"type":"object"}`),
		Handler: func(_ context.Context, args json.RawMessage) (json.RawMessage, error) {
			if len(args) == 0 {
				return json.RawMessage(`{}`), nil
			}
			return args, nil
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestServe_DispatchesAndResponds(t *testing.T) {
	in := strings.NewReader(
		`{"tool":"echo","args":{"x":1}}` + "\n" +
			`{"tool":"missing"}` + "\n" +
			`{"tool":"list_tools"}` + "\n")
	var out bytes.Buffer

	if err := Serve(context.Background(), echoRegistry(t), in, &out); err != nil {
		t.Fatalf("serve: %v", err)
	}

	var responses []Response
	scanner := bufio.NewScanner(&out)
	for scanner.Scan() {
		var resp Response
		if err := json.Unmarshal(scanner.Bytes(), &resp); err != nil {
			t.Fatalf("bad response line: %v", err)
		}
		responses = append(responses, resp)
	}
	if len(responses) != 3 {
		t.Fatalf("got %d responses", len(responses))
	}

	if responses[0].Tool != "echo" || string(responses[0].Result) != `{"x":1}` {
		t.Fatalf("echo response: %+v", responses[0])
	}
	if responses[1].Error == "" || !strings.Contains(responses[1].Error, "unknown tool") {
		t.Fatalf("missing tool response: %+v", responses[1])
	}
	var specs []Spec
	if err := json.Unmarshal(responses[2].Result, &specs); err != nil {
		t.Fatalf("list_tools result: %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "echo" {
		t.Fatalf("specs: %+v", specs)
	}
}

func TestServe_MalformedLine(t *testing.T) {
	in := strings.NewReader("not json\n")
	var out bytes.Buffer
	if err := Serve(context.Background(), echoRegistry(t), in, &out); err != nil {
		t.Fatalf("serve: %v", err)
	}
	var resp Response
	if err := json.Unmarshal(out.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Error, "malformed request") {
		t.Fatalf("error: %q", resp.Error)
	}
}

func TestServe_EmptyInput(t *testing.T) {
	var out bytes.Buffer
	if err := Serve(context.Background(), echoRegistry(t), strings.NewReader(""), &out); err != nil {
		t.Fatalf("serve: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("unexpected output: %q", out.String())
	}
}
