// Package mcp exposes the planner as a Model Context Protocol server so
// agent frontends can validate identifiers, resolve compounds and compute
// screening designs as tools.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/seplab/spmeplan"
	"github.com/seplab/spmeplan/internal/logging"
	"github.com/seplab/spmeplan/pkg/conditions"
	"github.com/seplab/spmeplan/pkg/domain"
)

// Server wraps the planner and exposes it as an MCP server.
type Server struct {
	planner   *spmeplan.Planner
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// NewServer creates a new MCP Server instance over the planner.
func NewServer(planner *spmeplan.Planner, opts ...Option) *Server {
	s := &Server{
		planner:   planner,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("spmeplan-mcp", spmeplan.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// QueryResponse wraps the per-CAS resolution results for structured output.
type QueryResponse struct {
	Results []spmeplan.QueryResult `json:"results" jsonschema_description:"Resolution outcome per CAS number"`
}

func (s *Server) registerTools() {
	// TOOL: validate_cas
	validateTool := mcp.NewTool("validate_cas",
		mcp.WithDescription("Validate a CAS Registry Number, including its checksum digit."),
		mcp.WithString("cas", mcp.Required(), mcp.Description("The CAS number, e.g. 64-17-5")),
	)
	s.mcpServer.AddTool(validateTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cas, err := request.RequireString("cas")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		clean, err := s.planner.ValidateCAS(cas)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(clean), nil
	})

	// TOOL: query_compounds
	queryTool := mcp.NewTool("query_compounds",
		mcp.WithDescription("Validate CAS numbers and resolve candidate compounds with their properties."),
		mcp.WithString("cas_numbers", mcp.Required(), mcp.Description("JSON array of CAS numbers")),
		mcp.WithOutputSchema[QueryResponse](),
	)
	s.mcpServer.AddTool(queryTool, mcp.NewStructuredToolHandler(s.handleQuery))

	// TOOL: compute_design
	computeTool := mcp.NewTool("compute_design",
		mcp.WithDescription("Recommend extraction conditions and generate a Box-Behnken screening design for the selected compounds."),
		mcp.WithString("selection", mcp.Required(), mcp.Description("JSON object mapping each CAS number to the chosen PubChem CID")),
		mcp.WithBoolean("is_ionic", mcp.Description("At least one compound is ionic or charged")),
		mcp.WithBoolean("has_high_viscosity", mcp.Description("The sample matrix is viscous or semi-solid")),
		mcp.WithNumber("center_points", mcp.Description("Number of center point replicates (default 1)")),
		mcp.WithOutputSchema[spmeplan.Plan](),
	)
	s.mcpServer.AddTool(computeTool, mcp.NewStructuredToolHandler(s.handleCompute))
}

func (s *Server) handleQuery(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (QueryResponse, error) {
	raw, ok := args["cas_numbers"].(string)
	if !ok {
		return QueryResponse{}, fmt.Errorf("cas_numbers must be a JSON array string")
	}

	var casNumbers []string
	if err := json.Unmarshal([]byte(raw), &casNumbers); err != nil {
		return QueryResponse{}, fmt.Errorf("invalid cas_numbers: %w", err)
	}
	if len(casNumbers) == 0 {
		return QueryResponse{}, fmt.Errorf("cas_numbers must not be empty")
	}

	return QueryResponse{Results: s.planner.Query(ctx, casNumbers)}, nil
}

func (s *Server) handleCompute(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (spmeplan.Plan, error) {
	raw, ok := args["selection"].(string)
	if !ok {
		return spmeplan.Plan{}, fmt.Errorf("selection must be a JSON object string")
	}

	var selection map[string]int
	if err := json.Unmarshal([]byte(raw), &selection); err != nil {
		return spmeplan.Plan{}, fmt.Errorf("invalid selection: %w", err)
	}

	opts := conditions.Options{}
	if v, ok := args["is_ionic"].(bool); ok {
		opts.Ionic = v
	}
	if v, ok := args["has_high_viscosity"].(bool); ok {
		opts.HighViscosity = v
	}

	centerPoints := spmeplan.DefaultCenterPoints
	if v, ok := args["center_points"].(float64); ok {
		centerPoints = int(v)
	}

	plan, err := s.planner.ComputePlan(ctx, selection, opts, centerPoints)
	if err != nil {
		s.logger.Error("MCP compute_design failed", "err", err)
		return spmeplan.Plan{}, fmt.Errorf("compute failed: %w", err)
	}
	return *plan, nil
}

// fiberEntry describes one coating in the fibers resource.
type fiberEntry struct {
	Fiber      domain.Fiber `json:"fiber"`
	Desorption string       `json:"desorption"`
}

func (s *Server) registerResources() {
	// EXPOSE: spmeplan://fibers
	s.mcpServer.AddResource(mcp.NewResource("spmeplan://fibers", "Fiber Coatings and Desorption Profiles",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		entries := make([]fiberEntry, 0, len(domain.Fibers()))
		for _, f := range domain.Fibers() {
			entries = append(entries, fiberEntry{Fiber: f, Desorption: domain.DesorptionProfile(f)})
		}
		jsonBytes, _ := json.Marshal(entries)

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "spmeplan://fibers",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
