package yourang

import (
	"net/http"

	"github.com/tombee/yourang/internal/operation/api"
)

// WorkflowHandler lists workflows, starts them and reads their executions.
type WorkflowHandler struct{}

var (
	paramWorkflowID = stringParam("workflowId", "The ID of the workflow", true)

	workflowSorts  = []string{"created_at", "-created_at", "display_name", "-display_name", "version", "-version"}
	executionSorts = []string{
		"completed_at", "-completed_at", "created_at", "-created_at",
		"started_at", "-started_at", "status", "-status",
	}
	executionStatuses = []string{"cancelled", "completed", "failed", "pending", "running", "timed_out"}
	executionTypes    = []string{"api", "campaign", "manual", "scheduled", "triggered"}
)

var workflowOperations = operationTable{
	op("execute", "Start a workflow for a phone number", "workflows", tagsWrite,
		paramWorkflowID,
		stringParam("to_number", "Phone number to call", true),
	),
	op("get", "Get a workflow", "workflows", tagsRead, paramWorkflowID),
	op("getExecutionDetails", "Get one execution of a workflow", "executions", tagsRead,
		paramWorkflowID,
		stringParam("executionId", "The ID of the execution", true),
	),
	op("getExecutions", "Get the executions of a workflow", "executions", tagsList,
		paramWorkflowID,
		paramReturnAll,
		limitParam(0),
		objectParam("executionFilters", "Optional filters: offset, status ("+joinEnum(executionStatuses)+"), type ("+joinEnum(executionTypes)+"), sort ("+joinEnum(executionSorts)+")"),
	),
	op("getAll", "Get many workflows", "workflows", tagsList,
		paramReturnAll,
		limitParam(0),
		objectParam("filters", "Optional filters: display_name, is_enabled, sort ("+joinEnum(workflowSorts)+")"),
		stringParam("advancedFilter", "Filter expression such as display_name:Onboarding&is_enabled:true; replaces display_name and is_enabled", false),
	),
}

// Resource implements Handler.
func (WorkflowHandler) Resource() Resource { return ResourceWorkflow }

// Operations implements api.TypedProvider.
func (WorkflowHandler) Operations() []api.OperationInfo { return workflowOperations.infos() }

// OperationSchema implements api.TypedProvider.
func (WorkflowHandler) OperationSchema(operation string) *api.OperationSchema {
	return workflowOperations.schema(operation)
}

// Build implements Handler.
func (h WorkflowHandler) Build(operation string, p Parameters, i int) (*api.Request, error) {
	if operation == "getAll" {
		return h.getAll(p, i)
	}
	if workflowOperations.schema(operation) == nil {
		return nil, unknownOperationError(ResourceWorkflow, operation)
	}

	workflowID, err := pathID(p, i, "workflowId", "Workflow ID")
	if err != nil {
		return nil, err
	}
	workflow := "/workflows/" + workflowID

	switch operation {
	case "get":
		return &api.Request{Method: http.MethodGet, Path: workflow}, nil
	case "execute":
		toNumber := paramString(p, "to_number", i)
		if isBlank(toNumber) {
			return nil, requiredError("to_number", "To Number")
		}
		return &api.Request{
			Method: http.MethodPost,
			Path:   workflow + "/execute",
			Body:   map[string]any{"to_number": toNumber},
		}, nil
	case "getExecutions":
		return h.getExecutions(p, i, workflow)
	case "getExecutionDetails":
		executionID, err := pathID(p, i, "executionId", "Execution ID")
		if err != nil {
			return nil, err
		}
		return &api.Request{Method: http.MethodGet, Path: workflow + "/executions/" + executionID}, nil
	default:
		return nil, unknownOperationError(ResourceWorkflow, operation)
	}
}

func (WorkflowHandler) getAll(p Parameters, i int) (*api.Request, error) {
	limit, err := pageLimit(p, i, 0)
	if err != nil {
		return nil, err
	}
	filters := paramMap(p, "filters", i)

	filter := BuildFilter([]FilterTerm{
		{Key: "display_name", Value: filters["display_name"]},
		{Key: "is_enabled", Value: filters["is_enabled"]},
	}, CombineAnd, paramString(p, "advancedFilter", i))

	return &api.Request{
		Method: http.MethodGet,
		Path:   "/workflows/",
		Query: BuildQuery(map[string]any{
			"limit":  limit,
			"filter": filter,
			"sort":   filters["sort"],
		}),
	}, nil
}

func (WorkflowHandler) getExecutions(p Parameters, i int, workflow string) (*api.Request, error) {
	limit, err := pageLimit(p, i, 0)
	if err != nil {
		return nil, err
	}
	filters := paramMap(p, "executionFilters", i)
	offset, err := optionalInt(filters["offset"], "offset")
	if err != nil {
		return nil, err
	}

	filter := BuildFilter([]FilterTerm{
		{Key: "status", Value: filters["status"]},
		{Key: "type", Value: filters["type"]},
	}, CombineAnd, "")

	return &api.Request{
		Method: http.MethodGet,
		Path:   workflow + "/executions",
		Query: BuildQuery(map[string]any{
			"limit":  limit,
			"offset": offset,
			"sort":   filters["sort"],
			"filter": filter,
		}),
	}, nil
}
