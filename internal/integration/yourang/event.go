package yourang

import (
	"net/http"
	"strings"

	"github.com/tombee/yourang/internal/operation/api"
)

// DefaultEventsPerDay is sent by event getAll when eventsPerDay is absent.
const DefaultEventsPerDay = 50

// EventHandler manages calendar events and appointments.
type EventHandler struct{}

var paramEventID = stringParam("eventId", "The ID of the event", true)

var eventStatuses = []string{"APPROVED", "CONFIRMED", "PENDING", "PENDING_DELETION", "REJECTED"}

var eventOperations = operationTable{
	op("delete", "Delete an event", "events", tagsDestructive, paramEventID),
	op("get", "Get an event", "events", tagsRead, paramEventID),
	op("getByDate", "Get the events of one day", "events", tagsList,
		api.ParameterInfo{Name: "targetDate", Type: "string", Description: "Date (YYYY-MM-DD or ISO 8601 datetime)", Required: true},
		paramReturnAll,
		limitParam(0),
	),
	op("getAll", "Get many events grouped by date", "events", tagsRead,
		stringParam("startDate", "First day to include (YYYY-MM-DD or ISO 8601 datetime)", false),
		stringParam("endDate", "Last day to include (YYYY-MM-DD or ISO 8601 datetime)", false),
		api.ParameterInfo{Name: "eventsPerDay", Type: "integer", Description: "Max number of events per day", Default: DefaultEventsPerDay},
	),
	op("update", "Update an event", "events", tagsWrite,
		paramEventID,
		stringParam("client_full_name", "Full name of the client", false),
		stringParam("client_email", "Email address of the client", false),
		stringParam("client_phone_number", "Phone number of the client", false),
		stringParam("details", "Event details", false),
		stringParam("starting_date", "Start of the event (ISO 8601)", false),
		stringParam("ending_date", "End of the event (ISO 8601)", false),
		enumParam("status", "Status of the event", eventStatuses...),
	),
	op("updateStatus", "Approve or reject an event", "events", tagsWrite,
		paramEventID,
		api.ParameterInfo{Name: "isApproved", Type: "boolean", Description: "Whether the event is approved", Required: true, Default: true},
	),
}

// Resource implements Handler.
func (EventHandler) Resource() Resource { return ResourceEvent }

// Operations implements api.TypedProvider.
func (EventHandler) Operations() []api.OperationInfo { return eventOperations.infos() }

// OperationSchema implements api.TypedProvider.
func (EventHandler) OperationSchema(operation string) *api.OperationSchema {
	return eventOperations.schema(operation)
}

// Build implements Handler.
func (h EventHandler) Build(operation string, p Parameters, i int) (*api.Request, error) {
	switch operation {
	case "get":
		return h.byID(p, i, http.MethodGet)
	case "delete":
		return h.byID(p, i, http.MethodDelete)
	case "getAll":
		return h.getAll(p, i)
	case "getByDate":
		return h.getByDate(p, i)
	case "update":
		return h.update(p, i)
	case "updateStatus":
		return h.updateStatus(p, i)
	default:
		return nil, unknownOperationError(ResourceEvent, operation)
	}
}

func (EventHandler) byID(p Parameters, i int, method string) (*api.Request, error) {
	eventID, err := pathID(p, i, "eventId", "Event ID")
	if err != nil {
		return nil, err
	}
	return &api.Request{Method: method, Path: "/events/" + eventID}, nil
}

func (EventHandler) getAll(p Parameters, i int) (*api.Request, error) {
	perDay, err := paramInt(p, "eventsPerDay", i, DefaultEventsPerDay)
	if err != nil {
		return nil, err
	}
	if err := checkRange("eventsPerDay", perDay, 1, 0); err != nil {
		return nil, err
	}

	return &api.Request{
		Method: http.MethodGet,
		Path:   "/events",
		Query: BuildQuery(map[string]any{
			"events_per_day": perDay,
			"start_date":     ExtractDate(paramString(p, "startDate", i)),
			"end_date":       ExtractDate(paramString(p, "endDate", i)),
		}),
	}, nil
}

func (EventHandler) getByDate(p Parameters, i int) (*api.Request, error) {
	target := paramString(p, "targetDate", i)
	if strings.TrimSpace(target) == "" {
		return nil, requiredError("targetDate", "Target Date")
	}
	limit, err := pageLimit(p, i, 0)
	if err != nil {
		return nil, err
	}

	return &api.Request{
		Method: http.MethodGet,
		Path:   "/events/date",
		Query: BuildQuery(map[string]any{
			"target_date": ExtractDate(target),
			"limit":       limit,
		}),
	}, nil
}

func (EventHandler) update(p Parameters, i int) (*api.Request, error) {
	eventID, err := pathID(p, i, "eventId", "Event ID")
	if err != nil {
		return nil, err
	}
	body, err := BuildBody(p, i, []Field{
		{Param: "client_full_name"},
		{Param: "client_email"},
		{Param: "client_phone_number"},
		{Param: "details"},
		{Param: "starting_date"},
		{Param: "ending_date"},
		{Param: "status"},
	})
	if err != nil {
		return nil, err
	}
	return &api.Request{Method: http.MethodPut, Path: "/events/" + eventID, Body: body}, nil
}

func (EventHandler) updateStatus(p Parameters, i int) (*api.Request, error) {
	eventID, err := pathID(p, i, "eventId", "Event ID")
	if err != nil {
		return nil, err
	}

	raw := p.Param("isApproved", i, nil)
	if isBlank(raw) {
		return nil, requiredError("isApproved", "Is Approved")
	}
	approved, ok := toBool(raw)
	if !ok {
		return nil, invalidError("isApproved", "isApproved must be a boolean, got %v", raw)
	}

	return &api.Request{
		Method: http.MethodPatch,
		Path:   "/events/" + eventID + "/status",
		Query:  map[string]any{"is_approved": approved},
	}, nil
}
