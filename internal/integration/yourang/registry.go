package yourang

// Resource names a Yourang API entity category.
type Resource string

const (
	ResourceCallHistory Resource = "callHistory"
	ResourceContact     Resource = "contact"
	ResourceAction      Resource = "action"
	ResourceEvent       Resource = "event"
	ResourceAgent       Resource = "agent"
	ResourceAgentTool   Resource = "agentTool"
	ResourceWorkflow    Resource = "workflow"
)

// resourceOrder is the display order of resources.
var resourceOrder = []Resource{
	ResourceCallHistory,
	ResourceContact,
	ResourceAction,
	ResourceEvent,
	ResourceAgent,
	ResourceAgentTool,
	ResourceWorkflow,
}

// registry maps every resource to its handler. It is never modified after
// package initialization.
var registry = map[Resource]Handler{
	ResourceCallHistory: CallHistoryHandler{},
	ResourceContact:     ContactHandler{},
	ResourceAction:      ActionHandler{},
	ResourceEvent:       EventHandler{},
	ResourceAgent:       AgentHandler{},
	ResourceAgentTool:   AgentToolHandler{},
	ResourceWorkflow:    WorkflowHandler{},
}

// Resources returns all resources in display order.
func Resources() []Resource {
	out := make([]Resource, len(resourceOrder))
	copy(out, resourceOrder)
	return out
}

// Lookup returns the handler for resource.
func Lookup(resource string) (Handler, error) {
	h, ok := registry[Resource(resource)]
	if !ok {
		return nil, unknownResourceError(resource)
	}
	return h, nil
}

// Resolve returns the handler for resource after checking that it
// supports operation. No request is built.
func Resolve(resource, operation string) (Handler, error) {
	h, err := Lookup(resource)
	if err != nil {
		return nil, err
	}
	if h.OperationSchema(operation) == nil {
		return nil, unknownOperationError(h.Resource(), operation)
	}
	return h, nil
}
