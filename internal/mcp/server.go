package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"

	"promptbook/internal/store"
)

// Protocol versions accepted verbatim; anything else downgrades to the
// newest one.
var supportedProtocolVersions = []string{"2024-11-05", "2025-06-18"}

const latestProtocolVersion = "2025-06-18"

// JSON-RPC 2.0 error codes used on the wire.
const (
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeInternalError  = -32603
)

// maxLineSize bounds a single request line. Prompt contents ride inside
// requests, so this is well above the default scanner buffer.
const maxLineSize = 10 * 1024 * 1024

type request struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type response struct {
	Jsonrpc string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Server is the stdio MCP server: a sequential loop that reads one
// line-delimited JSON-RPC request at a time and writes at most one response
// per request. It owns its catalogue store exclusively.
type Server struct {
	store   *store.Store
	in      io.Reader
	out     io.Writer
	logger  *log.Logger
	name    string
	version string
}

// NewServer creates a server reading requests from in and writing responses
// to out. Diagnostics go to the logger, never to out.
func NewServer(st *store.Store, in io.Reader, out io.Writer, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(os.Stderr, "promptbook-mcp: ", log.LstdFlags)
	}
	return &Server{
		store:   st,
		in:      in,
		out:     out,
		logger:  logger,
		name:    "promptbook",
		version: "0.1.0",
	}
}

// ServeStdio runs the MCP server over stdin/stdout until end of input.
func ServeStdio(st *store.Store, version string) error {
	srv := NewServer(st, os.Stdin, os.Stdout, nil)
	if version != "" {
		srv.version = version
	}
	return srv.Run()
}

// Run executes the read loop. A per-request failure is reported in-band and
// never stops the loop; only end of input (or a read error) does.
func (s *Server) Run() error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Printf("invalid JSON received: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp == nil {
			// Notification: acknowledged by doing nothing
			continue
		}
		if err := s.writeResponse(resp); err != nil {
			return fmt.Errorf("failed to write response: %w", err)
		}
	}
	return scanner.Err()
}

// handleRequest routes a request by method name. It returns nil for the two
// notification methods, which must not produce a response.
func (s *Server) handleRequest(req *request) *response {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "resources/list":
		return s.handleResourcesList(req)
	case "resources/read":
		return s.handleResourcesRead(req)
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "notifications/initialized", "notifications/cancelled":
		return nil
	default:
		return errorResponse(req.ID, codeMethodNotFound,
			fmt.Sprintf("Method not found: %s", req.Method), nil)
	}
}

func (s *Server) handleInitialize(req *request) *response {
	var params struct {
		ProtocolVersion string `json:"protocolVersion"`
	}
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return errorResponse(req.ID, codeInvalidParams, "Invalid params", err.Error())
		}
	}

	version := latestProtocolVersion
	for _, v := range supportedProtocolVersions {
		if params.ProtocolVersion == v {
			version = v
			break
		}
	}

	return resultResponse(req.ID, map[string]interface{}{
		"protocolVersion": version,
		"capabilities": map[string]interface{}{
			"resources": map[string]interface{}{
				"subscribe":   true,
				"listChanged": false,
			},
			"tools": map[string]interface{}{},
		},
		"serverInfo": map[string]interface{}{
			"name":    s.name,
			"version": s.version,
		},
	})
}

func (s *Server) writeResponse(resp *response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	if _, err := s.out.Write(data); err != nil {
		return err
	}
	_, err = s.out.Write([]byte("\n"))
	return err
}

func resultResponse(id json.RawMessage, result interface{}) *response {
	return &response{Jsonrpc: "2.0", ID: normalizeID(id), Result: result}
}

func errorResponse(id json.RawMessage, code int, message string, data interface{}) *response {
	return &response{
		Jsonrpc: "2.0",
		ID:      normalizeID(id),
		Error:   &rpcError{Code: code, Message: message, Data: data},
	}
}

// toolError maps a store error to the wire: validation and conflict failures
// are invalid-params, anything unanticipated is an internal error with the
// original message attached as diagnostic data.
func toolError(id json.RawMessage, err error) *response {
	if store.IsValidation(err) || store.IsConflict(err) {
		return errorResponse(id, codeInvalidParams, err.Error(), nil)
	}
	return errorResponse(id, codeInternalError, "Internal error", err.Error())
}

func normalizeID(id json.RawMessage) json.RawMessage {
	if len(id) == 0 {
		return json.RawMessage("null")
	}
	return id
}

// notFoundf builds the in-band not-found payload tools report instead of a
// transport-level error.
func notFoundf(format string, args ...interface{}) map[string]interface{} {
	return map[string]interface{}{"error": fmt.Sprintf(format, args...)}
}
