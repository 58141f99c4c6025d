package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mark3labs/onboardr/internal/onboarding"
)

// Tool names.
const (
	ToolStatus        = "onboarding_status"
	ToolOpen          = "onboarding_open"
	ToolToggle        = "onboarding_toggle"
	ToolPersonalize   = "onboarding_personalize"
	ToolDevPreference = "onboarding_dev_preference"
	ToolNext          = "onboarding_next"
	ToolBack          = "onboarding_back"
	ToolClose         = "onboarding_close"
)

// registerTools adds every onboarding tool to mcpServer.
func (s *Server) registerTools(mcpServer *server.MCPServer) {
	useCases := make([]string, 0, len(onboarding.KnownUseCases()))
	for _, uc := range onboarding.KnownUseCases() {
		useCases = append(useCases, string(uc))
	}

	mcpServer.AddTool(
		mcp.NewTool(ToolStatus,
			mcp.WithDescription("Show the current onboarding step, selection and error message"),
		),
		s.handleStatus,
	)
	mcpServer.AddTool(
		mcp.NewTool(ToolOpen,
			mcp.WithDescription("Open the onboarding wizard if it has never been completed"),
		),
		s.handleOpen,
	)
	mcpServer.AddTool(
		mcp.NewTool(ToolToggle,
			mcp.WithDescription("Toggle a use case on the selection step"),
			mcp.WithString("use_case", mcp.Required(),
				mcp.Description(fmt.Sprintf("Use case tag, one of %v", useCases)),
			),
		),
		s.handleToggle,
	)
	mcpServer.AddTool(
		mcp.NewTool(ToolPersonalize,
			mcp.WithDescription("Choose whether to enable AI features"),
			mcp.WithString("value", mcp.Required(),
				mcp.Enum(string(onboarding.PersonalizationWithAI), string(onboarding.PersonalizationWithoutAI)),
			),
		),
		s.handlePersonalize,
	)
	mcpServer.AddTool(
		mcp.NewTool(ToolDevPreference,
			mcp.WithDescription("Choose between developer and standard mode"),
			mcp.WithString("value", mcp.Required(),
				mcp.Enum(string(onboarding.DevPreferenceDev), string(onboarding.DevPreferenceNoDev)),
			),
		),
		s.handleDevPreference,
	)
	mcpServer.AddTool(
		mcp.NewTool(ToolNext,
			mcp.WithDescription("Advance to the next step, or finish on the last step"),
		),
		s.handleNext,
	)
	mcpServer.AddTool(
		mcp.NewTool(ToolBack,
			mcp.WithDescription("Go back one step"),
		),
		s.handleBack,
	)
	mcpServer.AddTool(
		mcp.NewTool(ToolClose,
			mcp.WithDescription("Dismiss the wizard without completing it"),
		),
		s.handleClose,
	)
}

// propsResult renders props as indented JSON.
func propsResult(p onboarding.Props) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) handleStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return propsResult(s.driver.Snapshot())
}

// handleOpen detaches from the request context since the session outlives
// the call and later finishes with it.
func (s *Server) handleOpen(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opened, err := s.driver.Open(context.WithoutCancel(ctx))
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	if !opened {
		return mcp.NewToolResultText("onboarding already completed"), nil
	}
	return propsResult(s.driver.Snapshot())
}

func (s *Server) handleToggle(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tag := request.GetString("use_case", "")
	if tag == "" {
		return mcp.NewToolResultText("error: missing 'use_case' parameter"), nil
	}
	if !s.driver.Snapshot().Open {
		return mcp.NewToolResultText("error: onboarding is not open"), nil
	}
	return propsResult(s.driver.Toggle(tag))
}

func (s *Server) handlePersonalize(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := onboarding.ParsePersonalization(request.GetString("value", ""))
	if err != nil || v == onboarding.PersonalizationUnset {
		return mcp.NewToolResultText("error: 'value' must be withAI or withoutAI"), nil
	}
	return propsResult(s.driver.SetPersonalization(v))
}

func (s *Server) handleDevPreference(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := onboarding.ParseDevPreference(request.GetString("value", ""))
	if err != nil || v == onboarding.DevPreferenceUnset {
		return mcp.NewToolResultText("error: 'value' must be devMode or nonDevMode"), nil
	}
	return propsResult(s.driver.SetDevPreference(v))
}

func (s *Server) handleNext(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := s.driver.Next()
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error: %v", err)), nil
	}
	return propsResult(p)
}

func (s *Server) handleBack(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return propsResult(s.driver.Prev())
}

func (s *Server) handleClose(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.driver.Close()
	return mcp.NewToolResultText("onboarding dismissed"), nil
}
