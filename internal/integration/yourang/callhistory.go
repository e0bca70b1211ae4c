package yourang

import (
	"net/http"

	"github.com/tombee/yourang/internal/operation/api"
)

// CallHistoryHandler serves call records, transcripts and summaries.
type CallHistoryHandler struct{}

var (
	paramCallID = stringParam("callId", "The ID of the call", true)

	callSorts    = []string{"duration", "-duration", "end_time", "-end_time", "start_time", "-start_time"}
	callTypes    = []string{"Automated", "Manual", "Transferred"}
	callStatuses = []string{"Completed", "Failed", "In Progress", "Cancelled"}
)

var callHistoryOperations = operationTable{
	op("get", "Get a call by ID", "calls", tagsRead, paramCallID),
	op("getAll", "Get many calls", "calls", tagsList,
		paramReturnAll,
		limitParam(0),
		objectParam("filters", "Optional filters: sort ("+joinEnum(callSorts)+"), call_type ("+joinEnum(callTypes)+
			"), call_status ("+joinEnum(callStatuses)+"), is_outbound, phone_number, contact_id"),
	),
	op("getTranscript", "Get the transcript of a call", "calls", tagsRead, paramCallID),
	op("getSummary", "Get the AI summary of a call", "calls", tagsRead, paramCallID),
}

// Resource implements Handler.
func (CallHistoryHandler) Resource() Resource { return ResourceCallHistory }

// Operations implements api.TypedProvider.
func (CallHistoryHandler) Operations() []api.OperationInfo { return callHistoryOperations.infos() }

// OperationSchema implements api.TypedProvider.
func (CallHistoryHandler) OperationSchema(operation string) *api.OperationSchema {
	return callHistoryOperations.schema(operation)
}

// Build implements Handler.
func (h CallHistoryHandler) Build(operation string, p Parameters, i int) (*api.Request, error) {
	switch operation {
	case "get":
		return h.callPath(p, i, "")
	case "getAll":
		return h.getAll(p, i)
	case "getTranscript":
		return h.callPath(p, i, "/transcript")
	case "getSummary":
		return h.callPath(p, i, "/summary")
	default:
		return nil, unknownOperationError(ResourceCallHistory, operation)
	}
}

func (CallHistoryHandler) callPath(p Parameters, i int, suffix string) (*api.Request, error) {
	callID, err := pathID(p, i, "callId", "Call ID")
	if err != nil {
		return nil, err
	}
	return &api.Request{Method: http.MethodGet, Path: "/call-history/" + callID + suffix}, nil
}

func (CallHistoryHandler) getAll(p Parameters, i int) (*api.Request, error) {
	limit, err := pageLimit(p, i, 0)
	if err != nil {
		return nil, err
	}
	filters := paramMap(p, "filters", i)

	return &api.Request{
		Method: http.MethodGet,
		Path:   "/call-history",
		Query: BuildQuery(map[string]any{
			"limit":        limit,
			"sort":         filters["sort"],
			"call_type":    filters["call_type"],
			"call_status":  filters["call_status"],
			"is_outbound":  filters["is_outbound"],
			"phone_number": filters["phone_number"],
			"contact_id":   filters["contact_id"],
		}),
	}, nil
}
