package yourang

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tombee/yourang/internal/operation/api"
)

func TestResources(t *testing.T) {
	assert.Equal(t, []Resource{
		ResourceCallHistory,
		ResourceContact,
		ResourceAction,
		ResourceEvent,
		ResourceAgent,
		ResourceAgentTool,
		ResourceWorkflow,
	}, Resources())

	for _, r := range Resources() {
		h, err := Lookup(string(r))
		require.NoError(t, err)
		assert.Equal(t, r, h.Resource())
	}
}

func TestResources_ReturnsCopy(t *testing.T) {
	got := Resources()
	got[0] = "mutated"
	assert.Equal(t, ResourceCallHistory, Resources()[0])
}

func TestResolve(t *testing.T) {
	h, err := Resolve("event", "updateStatus")
	require.NoError(t, err)
	assert.Equal(t, ResourceEvent, h.Resource())

	_, err = Resolve("event", "create")
	assert.True(t, errors.Is(err, ErrUnknownOperation))
	assert.EqualError(t, err, `unknown operation: "create" for resource "event"`)

	_, err = Resolve("Contact", "get")
	assert.True(t, errors.Is(err, ErrUnknownResource))
	assert.EqualError(t, err, `unknown resource: "Contact"`)
}

func TestOperationMetadata(t *testing.T) {
	want := map[Resource][]string{
		ResourceCallHistory: {"get", "getAll", "getTranscript", "getSummary"},
		ResourceContact:     {"create", "delete", "deleteByPhone", "get", "getByPhone", "getAll", "update", "updateByPhone"},
		ResourceAction: {
			"executeBatchContacts", "executeBatchNumbers", "executeSingle", "getActionHistory",
			"getActionHistoryDetails", "getBatchHistory", "getBatchHistoryDetails", "listActions",
		},
		ResourceEvent:     {"delete", "get", "getByDate", "getAll", "update", "updateStatus"},
		ResourceAgent:     {"get", "getAll"},
		ResourceAgentTool: {"get", "getAll", "update"},
		ResourceWorkflow:  {"execute", "get", "getExecutionDetails", "getExecutions", "getAll"},
	}

	for resource, ops := range want {
		h, err := Lookup(string(resource))
		require.NoError(t, err)

		var names []string
		for _, info := range h.Operations() {
			names = append(names, info.Name)
			assert.NotEmpty(t, info.Description, "%s.%s", resource, info.Name)
			assert.NotEmpty(t, info.Tags, "%s.%s", resource, info.Name)
		}
		assert.Equal(t, ops, names, "operations of %s", resource)
	}
}

func TestOperationSchema_PaginatedOperationsDeclareLimit(t *testing.T) {
	for _, resource := range Resources() {
		h, err := Lookup(string(resource))
		require.NoError(t, err)

		for _, info := range h.Operations() {
			if !containsTag(info.Tags, api.TagPaginated) {
				continue
			}
			schema := h.OperationSchema(info.Name)
			require.NotNil(t, schema)
			assert.True(t, hasParam(schema, "limit"), "%s.%s has no limit", resource, info.Name)
			assert.True(t, hasParam(schema, "returnAll"), "%s.%s has no returnAll", resource, info.Name)
		}
	}
}

func TestOperationSchema_ReturnsCopy(t *testing.T) {
	schema := ContactHandler{}.OperationSchema("get")
	require.NotNil(t, schema)
	schema.Parameters[0].Name = "mutated"

	assert.Equal(t, "contactId", ContactHandler{}.OperationSchema("get").Parameters[0].Name)
	assert.Nil(t, ContactHandler{}.OperationSchema("nope"))
}

func containsTag(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

func hasParam(schema *api.OperationSchema, name string) bool {
	for _, p := range schema.Parameters {
		if p.Name == name {
			return true
		}
	}
	return false
}
