package api

import (
	"github.com/your-org/pipelines/pkg/action"
	"github.com/your-org/pipelines/pkg/run"
)

// ListActionsResponse is the response for listing actions
type ListActionsResponse struct {
	Actions []*action.Definition `json:"actions"`
}

// RunActionResponse is the response for invoking an action
type RunActionResponse struct {
	Run *run.Record `json:"run"`
}

// ListRunsResponse is the response for listing runs
type ListRunsResponse struct {
	Runs []*run.Record `json:"runs"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
