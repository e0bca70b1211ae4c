package yourang

import (
	"net/http"

	"github.com/tombee/yourang/internal/operation/api"
)

// AgentHandler reads the AI phone agents of an account.
type AgentHandler struct{}

var agentOperations = operationTable{
	op("get", "Get an agent", "agents", tagsRead,
		stringParam("agentId", "The ID of the agent", true),
	),
	op("getAll", "Get many agents", "agents", tagsList,
		paramReturnAll,
		limitParam(0),
		objectParam("filters", "Optional filters: agent_type (inbound or outbound)"),
	),
}

// Resource implements Handler.
func (AgentHandler) Resource() Resource { return ResourceAgent }

// Operations implements api.TypedProvider.
func (AgentHandler) Operations() []api.OperationInfo { return agentOperations.infos() }

// OperationSchema implements api.TypedProvider.
func (AgentHandler) OperationSchema(operation string) *api.OperationSchema {
	return agentOperations.schema(operation)
}

// Build implements Handler.
func (AgentHandler) Build(operation string, p Parameters, i int) (*api.Request, error) {
	switch operation {
	case "get":
		agentID, err := pathID(p, i, "agentId", "Agent ID")
		if err != nil {
			return nil, err
		}
		return &api.Request{Method: http.MethodGet, Path: "/agents/" + agentID}, nil
	case "getAll":
		limit, err := pageLimit(p, i, 0)
		if err != nil {
			return nil, err
		}
		filters := paramMap(p, "filters", i)
		return &api.Request{
			Method: http.MethodGet,
			Path:   "/agents",
			Query: BuildQuery(map[string]any{
				"agent_type": filters["agent_type"],
				"limit":      limit,
			}),
		}, nil
	default:
		return nil, unknownOperationError(ResourceAgent, operation)
	}
}

// ShapeResponse unwraps the {"data": ...} envelope of agent responses.
// Responses without the envelope are returned unchanged.
func (AgentHandler) ShapeResponse(_ string, response any) any {
	if m, ok := response.(map[string]any); ok {
		if data, ok := m["data"]; ok {
			return data
		}
	}
	return response
}
