package yourang

import (
	"net/http"
	"strings"

	"github.com/tombee/yourang/internal/operation/api"
)

// maxHistoryLimit bounds limit on action and batch history listings.
const maxHistoryLimit = 500

// ActionHandler lists action configurations, runs them against numbers or
// contacts and reads their execution history.
type ActionHandler struct{}

var actionHistorySorts = []string{
	"completed_at", "-completed_at", "created_at", "-created_at", "quality_score", "-quality_score",
	"quality_text", "-quality_text", "started_at", "-started_at", "status", "-status",
}

var paramConfigurationID = stringParam("configurationId", "The ID of the action configuration", true)

var actionOperations = operationTable{
	op("executeBatchContacts", "Execute an action for many contacts", "actions", tagsWrite,
		paramConfigurationID,
		api.ParameterInfo{Name: "contact_ids", Type: "string", Description: "Contact IDs, one per line", Required: true},
	),
	op("executeBatchNumbers", "Execute an action for many phone numbers", "actions", tagsWrite,
		paramConfigurationID,
		api.ParameterInfo{Name: "to_numbers", Type: "string", Description: "Phone numbers, one per line", Required: true},
	),
	op("executeSingle", "Execute an action for one phone number", "actions", tagsWrite,
		paramConfigurationID,
		stringParam("to_number", "Phone number to call", true),
	),
	op("getActionHistory", "Get action execution history", "history", tagsList,
		paramReturnAll,
		limitParam(maxHistoryLimit),
		api.ParameterInfo{Name: "offset", Type: "integer", Description: "Number of results to skip", Default: 0},
		objectParam("filters", "Optional filters: batch_id, configuration_id, quality_text, status, sort ("+joinEnum(actionHistorySorts)+")"),
	),
	op("getActionHistoryDetails", "Get one action execution", "history", tagsRead,
		stringParam("actionHistoryId", "The ID of the action execution", true),
	),
	op("getBatchHistory", "Get batch execution history", "history", tagsList,
		paramReturnAll,
		limitParam(maxHistoryLimit),
	),
	op("getBatchHistoryDetails", "Get one batch execution", "history", tagsRead,
		stringParam("batchExecuteId", "The ID of the batch execution", true),
	),
	op("listActions", "List available action configurations", "actions", tagsRead),
}

// Resource implements Handler.
func (ActionHandler) Resource() Resource { return ResourceAction }

// Operations implements api.TypedProvider.
func (ActionHandler) Operations() []api.OperationInfo { return actionOperations.infos() }

// OperationSchema implements api.TypedProvider.
func (ActionHandler) OperationSchema(operation string) *api.OperationSchema {
	return actionOperations.schema(operation)
}

// Build implements Handler.
func (h ActionHandler) Build(operation string, p Parameters, i int) (*api.Request, error) {
	switch operation {
	case "listActions":
		return &api.Request{Method: http.MethodGet, Path: "/actions/"}, nil
	case "executeSingle":
		return h.executeSingle(p, i)
	case "executeBatchNumbers":
		return h.executeBatch(p, i, "to_numbers", "/batch/numbers")
	case "executeBatchContacts":
		return h.executeBatch(p, i, "contact_ids", "/batch/contacts")
	case "getActionHistory":
		return h.getActionHistory(p, i)
	case "getActionHistoryDetails":
		return h.details(p, i, "actionHistoryId", "Action History ID", "/actions/history/")
	case "getBatchHistory":
		return h.getBatchHistory(p, i)
	case "getBatchHistoryDetails":
		return h.details(p, i, "batchExecuteId", "Batch Execute ID", "/actions/batch-history/")
	default:
		return nil, unknownOperationError(ResourceAction, operation)
	}
}

func (ActionHandler) executeSingle(p Parameters, i int) (*api.Request, error) {
	configID, err := pathID(p, i, "configurationId", "Configuration ID")
	if err != nil {
		return nil, err
	}
	body, err := BuildBody(p, i, []Field{{Param: "to_number", Required: true}})
	if err != nil {
		return nil, err
	}
	return &api.Request{
		Method: http.MethodPost,
		Path:   "/actions/" + configID + "/execute",
		Body:   body,
	}, nil
}

// executeBatch sends every line of the list parameter as one array.
func (ActionHandler) executeBatch(p Parameters, i int, param, suffix string) (*api.Request, error) {
	configID, err := pathID(p, i, "configurationId", "Configuration ID")
	if err != nil {
		return nil, err
	}
	values := paramLines(p, param, i)
	if len(values) == 0 {
		return nil, missingFieldsError([]string{param})
	}
	return &api.Request{
		Method: http.MethodPost,
		Path:   "/actions/" + configID + suffix,
		Body:   map[string]any{param: values},
	}, nil
}

func (ActionHandler) getActionHistory(p Parameters, i int) (*api.Request, error) {
	limit, err := pageLimit(p, i, maxHistoryLimit)
	if err != nil {
		return nil, err
	}
	offset, err := optionalInt(p.Param("offset", i, nil), "offset")
	if err != nil {
		return nil, err
	}
	if n, ok := offset.(int); ok && n < 0 {
		return nil, invalidError("offset", "offset must be at least 0, got %d", n)
	}
	filters := paramMap(p, "filters", i)

	return &api.Request{
		Method: http.MethodGet,
		Path:   "/actions/history",
		Query: BuildQuery(map[string]any{
			"limit":            limit,
			"offset":           offset,
			"configuration_id": filters["configuration_id"],
			"batch_id":         filters["batch_id"],
			"quality_text":     filters["quality_text"],
			"status":           filters["status"],
			"sort":             filters["sort"],
		}),
	}, nil
}

func (ActionHandler) getBatchHistory(p Parameters, i int) (*api.Request, error) {
	limit, err := pageLimit(p, i, maxHistoryLimit)
	if err != nil {
		return nil, err
	}
	return &api.Request{
		Method: http.MethodGet,
		Path:   "/actions/batch-history",
		Query:  BuildQuery(map[string]any{"limit": limit}),
	}, nil
}

func (ActionHandler) details(p Parameters, i int, param, label, prefix string) (*api.Request, error) {
	id, err := pathID(p, i, param, label)
	if err != nil {
		return nil, err
	}
	return &api.Request{Method: http.MethodGet, Path: prefix + id}, nil
}

// paramLines reads a list parameter given either as multiline text or as
// an array of scalars.
func paramLines(p Parameters, name string, i int) []string {
	switch v := p.Param(name, i, nil).(type) {
	case string:
		return ParseMultiline(v)
	case []string:
		return ParseMultiline(strings.Join(v, "\n"))
	case []any:
		lines := make([]string, 0, len(v))
		for _, item := range v {
			lines = append(lines, toString(item))
		}
		return ParseMultiline(strings.Join(lines, "\n"))
	default:
		return nil
	}
}
