package yourang

import (
	"context"
	"fmt"
	"strings"

	"github.com/tombee/yourang/internal/operation/api"
)

// Requester issues one authenticated request and returns the decoded JSON
// response. *api.Client implements it.
type Requester interface {
	Do(ctx context.Context, req *api.Request) (any, error)
}

// Handler owns the operations of one resource. Handlers are stateless and
// safe for concurrent use.
type Handler interface {
	api.TypedProvider

	// Resource returns the resource the handler serves.
	Resource() Resource

	// Build returns the single request that performs operation for the
	// item at itemIndex. It never performs I/O.
	Build(operation string, p Parameters, itemIndex int) (*api.Request, error)
}

// ResponseShaper is implemented by handlers that reshape the decoded
// response before it becomes the item's output.
type ResponseShaper interface {
	ShapeResponse(operation string, response any) any
}

// Execute builds and sends the request for one item.
func Execute(ctx context.Context, h Handler, r Requester, operation string, p Parameters, itemIndex int) (any, error) {
	req, err := h.Build(operation, p, itemIndex)
	if err != nil {
		return nil, err
	}

	resp, err := r.Do(ctx, req)
	if err != nil {
		return nil, err
	}

	if shaper, ok := h.(ResponseShaper); ok {
		resp = shaper.ShapeResponse(operation, resp)
	}
	return resp, nil
}

// operationDef is the metadata of one operation.
type operationDef struct {
	api.OperationInfo
	Params []api.ParameterInfo
}

// operationTable lists a resource's operations in display order.
type operationTable []operationDef

func (t operationTable) infos() []api.OperationInfo {
	out := make([]api.OperationInfo, len(t))
	for i, def := range t {
		out[i] = def.OperationInfo
	}
	return out
}

func (t operationTable) schema(name string) *api.OperationSchema {
	for _, def := range t {
		if def.Name == name {
			params := make([]api.ParameterInfo, len(def.Params))
			copy(params, def.Params)
			return &api.OperationSchema{Description: def.Description, Parameters: params}
		}
	}
	return nil
}

func op(name, description, category string, tags []string, params ...api.ParameterInfo) operationDef {
	return operationDef{
		OperationInfo: api.OperationInfo{Name: name, Description: description, Category: category, Tags: tags},
		Params:        params,
	}
}

var (
	tagsRead        = []string{api.TagRead}
	tagsList        = []string{api.TagRead, api.TagPaginated}
	tagsWrite       = []string{api.TagWrite}
	tagsDestructive = []string{api.TagWrite, api.TagDestructive}
)

func stringParam(name, description string, required bool) api.ParameterInfo {
	return api.ParameterInfo{Name: name, Type: "string", Description: description, Required: required}
}

func enumParam(name, description string, values ...string) api.ParameterInfo {
	return api.ParameterInfo{Name: name, Type: "string", Description: description, Enum: values}
}

func objectParam(name, description string) api.ParameterInfo {
	return api.ParameterInfo{Name: name, Type: "object", Description: description}
}

var paramReturnAll = api.ParameterInfo{
	Name:        "returnAll",
	Type:        "boolean",
	Description: "Whether to return all results or only up to a given limit",
	Default:     false,
}

func limitParam(max int) api.ParameterInfo {
	desc := "Max number of results to return (minimum 1)"
	if max > 0 {
		desc = fmt.Sprintf("Max number of results to return (1 to %d)", max)
	}
	return api.ParameterInfo{Name: "limit", Type: "integer", Description: desc, Default: DefaultLimit}
}

// joinEnum renders allowed values for a description.
func joinEnum(values []string) string {
	return strings.Join(values, ", ")
}
