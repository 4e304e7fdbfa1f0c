// Package bridge implements the JSON function-dispatch protocol the webview
// frontend uses to call into the host.
package bridge

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
)

type Request struct {
	Function string   `json:"function"`
	Args     []string `json:"args"`
}

type Response struct {
	Success bool    `json:"success"`
	Data    *string `json:"data"`
	Error   *string `json:"error"`
}

// HandlerFunc executes one bridge function. A returned error becomes a
// Success=false response; it never fails the transport.
type HandlerFunc func(args []string) (string, error)

type UnknownFunctionError struct {
	Function string
}

func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("Unknown function: %s", e.Function)
}

type ArgCountError struct {
	Function string
	Expected int
	Got      int
}

func (e *ArgCountError) Error() string {
	return fmt.Sprintf("Invalid argument count for %s: expected %d, got %d",
		e.Function, e.Expected, e.Got)
}

type ParseError struct {
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("Parse error: %s", e.Message)
}

type Registry struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

// NewRegistry returns a registry preloaded with the built-in functions.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]HandlerFunc)}
	r.Register("hello", helloHandler)
	r.Register("add", addHandler)
	return r
}

func (r *Registry) Register(name string, fn HandlerFunc) {
	r.mu.Lock()
	r.handlers[name] = fn
	r.mu.Unlock()
}

func (r *Registry) Handle(function string, args []string) (string, error) {
	r.mu.RLock()
	fn, ok := r.handlers[function]
	r.mu.RUnlock()

	if !ok {
		return "", &UnknownFunctionError{Function: function}
	}
	return fn(args)
}

// Dispatch parses a raw message and runs the named function. Every failure
// mode is reported in the response body; the caller never sees a Go error.
func (r *Registry) Dispatch(body []byte) Response {
	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		msg := fmt.Sprintf("Failed to parse message: %v", err)
		return Response{Success: false, Error: &msg}
	}

	result, err := r.Handle(req.Function, req.Args)
	if err != nil {
		msg := err.Error()
		return Response{Success: false, Error: &msg}
	}

	return Response{Success: true, Data: &result}
}

func (r *Registry) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	resp := r.Dispatch(body)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(resp)
}
