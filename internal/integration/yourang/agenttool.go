package yourang

import (
	"encoding/json"
	"net/http"

	"github.com/tombee/yourang/internal/operation/api"
)

// Agent tool names.
const (
	ToolEndTheCall         = "end-the-call"
	ToolMakeReservation    = "make-reservation"
	ToolTransferToOperator = "transfer-to-operator"
	ToolTransferToPhone    = "transfer-to-phone"
)

// Bounds of reservation_duration_minutes.
const (
	minReservationMinutes = 15
	maxReservationMinutes = 480
)

// AgentToolHandler reads and configures the tools of an agent.
type AgentToolHandler struct{}

// toolFields lists the body fields each tool accepts. Tools not listed
// accept only is_enabled.
var toolFields = map[string][]Field{
	ToolMakeReservation: {
		{Param: "is_enabled"},
		{Param: "send_sms"},
		{Param: "allow_overlapping_reservations"},
		{Param: "include_guests"},
		{Param: "sms_text"},
		{Param: "reservation_duration_minutes"},
		{Param: "reservation_hours"},
		{Param: "default_checkin_time"},
		{Param: "default_checkout_time"},
	},
	ToolTransferToOperator: {
		{Param: "is_enabled"},
		{Param: "available_hours"},
		{Param: "enabled_departments"},
	},
	ToolTransferToPhone: {
		{Param: "is_enabled"},
		{Param: "phone_destinations"},
		{Param: "transfer_message"},
	},
}

var defaultToolFields = []Field{{Param: "is_enabled"}}

// toolOverlay maps a UI collection parameter onto the body key it replaces.
type toolOverlay struct {
	param     string
	key       string
	transform func(collection any) (any, bool)
}

var toolOverlays = map[string]toolOverlay{
	ToolMakeReservation:    {param: "reservation_hours_ui", key: "reservation_hours", transform: scheduleOverlay},
	ToolTransferToOperator: {param: "available_hours_ui", key: "available_hours", transform: scheduleOverlay},
	ToolTransferToPhone:    {param: "phone_destinations_ui", key: "phone_destinations", transform: destinationOverlay},
}

var (
	paramAgentID  = stringParam("agentId", "The ID of the agent", true)
	paramToolName = api.ParameterInfo{
		Name:        "toolName",
		Type:        "string",
		Description: "The tool to read or configure",
		Required:    true,
		Default:     ToolMakeReservation,
		Enum:        []string{ToolEndTheCall, ToolMakeReservation, ToolTransferToOperator, ToolTransferToPhone},
	}
)

var agentToolOperations = operationTable{
	op("get", "Get one tool of an agent", "tools", tagsRead, paramAgentID, paramToolName),
	op("getAll", "Get all tools of an agent", "tools", tagsRead, paramAgentID),
	op("update", "Update the configuration of an agent tool", "tools", tagsWrite,
		paramAgentID,
		paramToolName,
		api.ParameterInfo{Name: "is_enabled", Type: "boolean", Description: "Whether the tool is enabled", Default: true},
		api.ParameterInfo{Name: "send_sms", Type: "boolean", Description: "Send an SMS confirmation (make-reservation)", Default: true},
		api.ParameterInfo{Name: "allow_overlapping_reservations", Type: "boolean", Description: "Allow overlapping reservations (make-reservation)", Default: false},
		api.ParameterInfo{Name: "include_guests", Type: "boolean", Description: "Ask for the number of guests (make-reservation)", Default: false},
		stringParam("sms_text", "SMS confirmation text (make-reservation)", false),
		api.ParameterInfo{Name: "reservation_duration_minutes", Type: "integer", Description: "Reservation length in minutes, 15 to 480 (make-reservation)", Default: 60},
		objectParam("reservation_hours_ui", "Reservation hours as {scheduleValues: [{day, mode, ranges}]} (make-reservation)"),
		stringParam("default_checkin_time", "Default check-in time, HH:MM (make-reservation)", false),
		stringParam("default_checkout_time", "Default check-out time, HH:MM (make-reservation)", false),
		objectParam("available_hours_ui", "Operator hours as {scheduleValues: [{day, mode, ranges}]} (transfer-to-operator)"),
		api.ParameterInfo{Name: "enabled_departments", Type: "array", Description: "Departments, as a list or JSON text (transfer-to-operator)", Default: []any{}},
		objectParam("phone_destinations_ui", "Destinations as {destinationValues: [{name, phone_number, description, available_hours_ui}]} (transfer-to-phone)"),
		stringParam("transfer_message", "Message played before the transfer (transfer-to-phone)", false),
	),
}

// Resource implements Handler.
func (AgentToolHandler) Resource() Resource { return ResourceAgentTool }

// Operations implements api.TypedProvider.
func (AgentToolHandler) Operations() []api.OperationInfo { return agentToolOperations.infos() }

// OperationSchema implements api.TypedProvider.
func (AgentToolHandler) OperationSchema(operation string) *api.OperationSchema {
	return agentToolOperations.schema(operation)
}

// Build implements Handler.
func (h AgentToolHandler) Build(operation string, p Parameters, i int) (*api.Request, error) {
	if agentToolOperations.schema(operation) == nil {
		return nil, unknownOperationError(ResourceAgentTool, operation)
	}
	agentID, err := pathID(p, i, "agentId", "Agent ID")
	if err != nil {
		return nil, err
	}
	tools := "/agents/" + agentID + "/tools"

	switch operation {
	case "getAll":
		return &api.Request{Method: http.MethodGet, Path: tools}, nil
	case "get":
		toolName, err := pathID(p, i, "toolName", "Tool Name")
		if err != nil {
			return nil, err
		}
		return &api.Request{Method: http.MethodGet, Path: tools + "/" + toolName}, nil
	case "update":
		return h.update(p, i, tools)
	default:
		return nil, unknownOperationError(ResourceAgentTool, operation)
	}
}

func (AgentToolHandler) update(p Parameters, i int, tools string) (*api.Request, error) {
	rawName := paramString(p, "toolName", i)
	toolName, err := pathID(p, i, "toolName", "Tool Name")
	if err != nil {
		return nil, err
	}

	fields, ok := toolFields[rawName]
	if !ok {
		fields = defaultToolFields
	}
	body, err := BuildBody(p, i, fields)
	if err != nil {
		return nil, err
	}

	if v, ok := body["reservation_duration_minutes"]; ok {
		n, ok := toInt(v)
		if !ok {
			return nil, invalidError("reservation_duration_minutes",
				"reservation_duration_minutes must be an integer, got %v", v)
		}
		if err := checkRange("reservation_duration_minutes", n, minReservationMinutes, maxReservationMinutes); err != nil {
			return nil, err
		}
		body["reservation_duration_minutes"] = n
	}

	if v, ok := body["enabled_departments"]; ok {
		departments, err := decodeJSONParam("enabled_departments", v)
		if err != nil {
			return nil, err
		}
		body["enabled_departments"] = departments
	}

	if overlay, ok := toolOverlays[rawName]; ok {
		if value, ok := overlay.transform(p.Param(overlay.param, i, nil)); ok {
			body[overlay.key] = value
		}
	}

	return &api.Request{Method: http.MethodPatch, Path: tools + "/" + toolName, Body: body}, nil
}

func scheduleOverlay(collection any) (any, bool) {
	rows := scheduleRows(collection)
	if len(rows) == 0 {
		return nil, false
	}
	return TransformSchedule(rows), true
}

func destinationOverlay(collection any) (any, bool) {
	rows := destinationRows(collection)
	if len(rows) == 0 {
		return nil, false
	}
	return TransformDestinations(rows), true
}

// decodeJSONParam decodes a list parameter given as JSON text. Values
// that are already structured are passed through.
func decodeJSONParam(name string, v any) (any, error) {
	switch s := v.(type) {
	case string:
		var out any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil, invalidError(name, "%s must be valid JSON: %v", name, err)
		}
		return out, nil
	case []any, map[string]any:
		return s, nil
	default:
		return nil, invalidError(name, "%s must be JSON text or a list, got %s", name, describe(v))
	}
}
