// Package mcp exposes the planner as an MCP server, so agent hosts can plan
// and replan trips through tool calls.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/avelar-dev/itinero"
	"github.com/avelar-dev/itinero/pkg/domain"
)

// TripResponse is the structured result shared by every tool.
type TripResponse struct {
	State *domain.TripState `json:"state" jsonschema_description:"The current state of the planning session"`
	// Awaiting is true when the session is paused on an alternate choice
	// and expects a choose_alternate call.
	Awaiting bool `json:"awaiting_alternate" jsonschema_description:"Whether the session waits for an alternate-destination choice"`
}

// Server wraps the Planner and exposes it as an MCP server.
type Server struct {
	planner   *itinero.Planner
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server over the given planner.
func NewServer(planner *itinero.Planner) *Server {
	s := &Server{
		planner:   planner,
		mcpServer: server.NewMCPServer("itinero-mcp", itinero.Version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	sseServer := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL(fmt.Sprintf("http://localhost:%d", port)))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{Addr: addr, Handler: mux}

	errs := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

func (s *Server) registerTools() {
	planTool := mcp.NewTool("plan_trip",
		mcp.WithDescription("Start a trip planning session: evaluates weather, searches hotels and flights, filters by budget and synthesizes a day-wise itinerary."),
		mcp.WithString("destination", mcp.Required(), mcp.Description("Destination city")),
		mcp.WithString("departure_city", mcp.Required(), mcp.Description("City the trip starts from")),
		mcp.WithString("start_date", mcp.Required(), mcp.Description("Trip start date (YYYY-MM-DD)")),
		mcp.WithString("end_date", mcp.Required(), mcp.Description("Trip end date (YYYY-MM-DD)")),
		mcp.WithNumber("travelers", mcp.Description("Number of travelers (default 2)")),
		mcp.WithString("budget_tier", mcp.Description("One of backpacker, budget, mid-range, luxury (default budget)")),
		mcp.WithString("holiday_type", mcp.Description("Holiday style, e.g. Beach, Adventure, Skiing")),
		mcp.WithOutputSchema[TripResponse](),
	)
	s.mcpServer.AddTool(planTool, mcp.NewStructuredToolHandler(s.handlePlan))

	getTool := mcp.NewTool("get_trip",
		mcp.WithDescription("Fetch the current state of a planning session."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID returned by plan_trip")),
		mcp.WithOutputSchema[TripResponse](),
	)
	s.mcpServer.AddTool(getTool, mcp.NewStructuredToolHandler(s.handleGet))

	alternateTool := mcp.NewTool("choose_alternate",
		mcp.WithDescription("Resolve a paused alternate-destination choice. Omit name to keep the original destination and accept the weather risk."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("name", mcp.Description("Name of the chosen alternate (optional)")),
		mcp.WithOutputSchema[TripResponse](),
	)
	s.mcpServer.AddTool(alternateTool, mcp.NewStructuredToolHandler(s.handleAlternate))

	replanTool := mcp.NewTool("replan_trip",
		mcp.WithDescription("Apply a replan directive to a finished session: accept, change_hotel, change_dates or change_destination."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID")),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Directive kind")),
		mcp.WithString("new_destination", mcp.Description("Required for change_destination")),
		mcp.WithString("new_start_date", mcp.Description("Required for change_dates (YYYY-MM-DD)")),
		mcp.WithString("new_end_date", mcp.Description("Required for change_dates (YYYY-MM-DD)")),
		mcp.WithString("reason", mcp.Description("Free-form context recorded in history")),
		mcp.WithOutputSchema[TripResponse](),
	)
	s.mcpServer.AddTool(replanTool, mcp.NewStructuredToolHandler(s.handleReplan))
}

type planArgs struct {
	Destination   string  `mapstructure:"destination"`
	DepartureCity string  `mapstructure:"departure_city"`
	StartDate     string  `mapstructure:"start_date"`
	EndDate       string  `mapstructure:"end_date"`
	Travelers     float64 `mapstructure:"travelers"`
	BudgetTier    string  `mapstructure:"budget_tier"`
	HolidayType   string  `mapstructure:"holiday_type"`
}

func (s *Server) handlePlan(ctx context.Context, request mcp.CallToolRequest, raw map[string]any) (TripResponse, error) {
	var args planArgs
	if err := mapstructure.Decode(raw, &args); err != nil {
		return TripResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}

	dates, err := parseDates(args.StartDate, args.EndDate)
	if err != nil {
		return TripResponse{}, err
	}

	travelers := int(args.Travelers)
	if travelers == 0 {
		travelers = 2
	}

	tier := domain.TierBudget
	if args.BudgetTier != "" {
		tier, err = domain.ParseTier(args.BudgetTier)
		if err != nil {
			return TripResponse{}, err
		}
	}

	st, err := s.planner.Plan(ctx, itinero.TripRequest{
		Destination:   args.Destination,
		DepartureCity: args.DepartureCity,
		Dates:         dates,
		Travelers:     travelers,
		BudgetTier:    tier,
		HolidayType:   args.HolidayType,
	})
	if err != nil && st == nil {
		return TripResponse{}, err
	}
	return response(st), nil
}

func (s *Server) handleGet(ctx context.Context, request mcp.CallToolRequest, raw map[string]any) (TripResponse, error) {
	sessionID, _ := raw["session_id"].(string)
	st, err := s.planner.Get(ctx, sessionID)
	if err != nil {
		return TripResponse{}, err
	}
	return response(st), nil
}

func (s *Server) handleAlternate(ctx context.Context, request mcp.CallToolRequest, raw map[string]any) (TripResponse, error) {
	sessionID, _ := raw["session_id"].(string)
	name, _ := raw["name"].(string)

	st, err := s.planner.ChooseAlternate(ctx, sessionID, name)
	if err != nil {
		return TripResponse{}, err
	}
	return response(st), nil
}

type replanArgs struct {
	SessionID      string `mapstructure:"session_id"`
	Kind           string `mapstructure:"kind"`
	NewDestination string `mapstructure:"new_destination"`
	NewStartDate   string `mapstructure:"new_start_date"`
	NewEndDate     string `mapstructure:"new_end_date"`
	Reason         string `mapstructure:"reason"`
}

func (s *Server) handleReplan(ctx context.Context, request mcp.CallToolRequest, raw map[string]any) (TripResponse, error) {
	var args replanArgs
	if err := mapstructure.Decode(raw, &args); err != nil {
		return TripResponse{}, fmt.Errorf("invalid arguments: %w", err)
	}

	directive := domain.ReplanDirective{
		Kind:           domain.DirectiveKind(args.Kind),
		NewDestination: args.NewDestination,
		Reason:         args.Reason,
	}
	if !directive.Kind.Valid() {
		return TripResponse{}, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidDirective, args.Kind)
	}
	if args.NewStartDate != "" || args.NewEndDate != "" {
		dates, err := parseDates(args.NewStartDate, args.NewEndDate)
		if err != nil {
			return TripResponse{}, err
		}
		directive.NewDates = &dates
	}

	st, err := s.planner.Replan(ctx, args.SessionID, directive)
	if err != nil {
		return TripResponse{}, err
	}
	return response(st), nil
}

func parseDates(start, end string) (domain.DateRange, error) {
	s, err := time.Parse("2006-01-02", start)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse("2006-01-02", end)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return domain.DateRange{Start: s, End: e}, nil
}

func response(st *domain.TripState) TripResponse {
	return TripResponse{
		State:    st,
		Awaiting: st.Status == domain.StatusAwaitingAlternate,
	}
}
