package yourang

import (
	"net/http"

	"github.com/tombee/yourang/internal/operation/api"
)

// ContactHandler manages customer contacts.
type ContactHandler struct{}

var (
	paramContactID   = stringParam("contactId", "The ID of the contact", true)
	paramPhoneLookup = stringParam("phoneNumberLookup", "Phone number of the contact to look up", true)

	contactFieldParams = []api.ParameterInfo{
		stringParam("first_name", "First name of the contact", false),
		stringParam("last_name", "Last name of the contact", false),
		stringParam("phone_number", "Phone number of the contact", false),
		stringParam("email", "Email address of the contact", false),
		stringParam("address", "Postal address of the contact", false),
	}
)

var contactOperations = operationTable{
	op("create", "Create a contact", "contacts", tagsWrite,
		stringParam("first_name", "First name of the contact", true),
		stringParam("phone_number", "Phone number of the contact", true),
		stringParam("last_name", "Last name of the contact", false),
		stringParam("email", "Email address of the contact", false),
		stringParam("address", "Postal address of the contact", false),
	),
	op("delete", "Delete a contact", "contacts", tagsDestructive, paramContactID),
	op("deleteByPhone", "Delete a contact by phone number", "contacts", tagsDestructive, paramPhoneLookup),
	op("get", "Get a contact", "contacts", tagsRead, paramContactID),
	op("getByPhone", "Get a contact by phone number", "contacts", tagsRead, paramPhoneLookup),
	op("getAll", "Get many contacts", "contacts", tagsList,
		paramReturnAll,
		limitParam(0),
		objectParam("search", "Search fields: first_name, last_name, email, phone_number, combineOperation (& or |), sort ("+joinEnum(contactSorts)+")"),
		stringParam("advancedFilter", "Filter expression such as first_name:John|last_name:Doe; replaces the search fields", false),
	),
	op("update", "Update a contact", "contacts", tagsWrite, append([]api.ParameterInfo{paramContactID}, contactFieldParams...)...),
	op("updateByPhone", "Update a contact by phone number", "contacts", tagsWrite, append([]api.ParameterInfo{paramPhoneLookup}, contactFieldParams...)...),
}

var contactSorts = []string{
	"created_at", "-created_at", "email", "-email",
	"first_name", "-first_name", "last_name", "-last_name",
}

var contactUpdateFields = []Field{
	{Param: "first_name"},
	{Param: "last_name"},
	{Param: "phone_number"},
	{Param: "email"},
	{Param: "address"},
}

// Resource implements Handler.
func (ContactHandler) Resource() Resource { return ResourceContact }

// Operations implements api.TypedProvider.
func (ContactHandler) Operations() []api.OperationInfo { return contactOperations.infos() }

// OperationSchema implements api.TypedProvider.
func (ContactHandler) OperationSchema(operation string) *api.OperationSchema {
	return contactOperations.schema(operation)
}

// Build implements Handler.
func (h ContactHandler) Build(operation string, p Parameters, i int) (*api.Request, error) {
	switch operation {
	case "create":
		return h.create(p, i)
	case "update":
		return h.write(p, i, "contactId", "Contact ID", "/contacts/")
	case "get":
		return h.lookup(p, i, http.MethodGet, "contactId", "Contact ID", "/contacts/")
	case "delete":
		return h.lookup(p, i, http.MethodDelete, "contactId", "Contact ID", "/contacts/")
	case "getAll":
		return h.getAll(p, i)
	case "getByPhone":
		return h.lookup(p, i, http.MethodGet, "phoneNumberLookup", "Phone Number", "/contacts/by-phone/")
	case "updateByPhone":
		return h.write(p, i, "phoneNumberLookup", "Phone Number", "/contacts/by-phone/")
	case "deleteByPhone":
		return h.lookup(p, i, http.MethodDelete, "phoneNumberLookup", "Phone Number", "/contacts/by-phone/")
	default:
		return nil, unknownOperationError(ResourceContact, operation)
	}
}

func (ContactHandler) create(p Parameters, i int) (*api.Request, error) {
	body, err := BuildBody(p, i, []Field{
		{Param: "first_name", Required: true},
		{Param: "phone_number", Required: true},
		{Param: "last_name"},
		{Param: "email"},
		{Param: "address"},
	})
	if err != nil {
		return nil, err
	}
	return &api.Request{Method: http.MethodPost, Path: "/contacts", Body: body}, nil
}

func (ContactHandler) lookup(p Parameters, i int, method, param, label, prefix string) (*api.Request, error) {
	id, err := pathID(p, i, param, label)
	if err != nil {
		return nil, err
	}
	return &api.Request{Method: method, Path: prefix + id}, nil
}

func (ContactHandler) write(p Parameters, i int, param, label, prefix string) (*api.Request, error) {
	id, err := pathID(p, i, param, label)
	if err != nil {
		return nil, err
	}
	body, err := BuildBody(p, i, contactUpdateFields)
	if err != nil {
		return nil, err
	}
	return &api.Request{Method: http.MethodPut, Path: prefix + id, Body: body}, nil
}

func (ContactHandler) getAll(p Parameters, i int) (*api.Request, error) {
	limit, err := pageLimit(p, i, 0)
	if err != nil {
		return nil, err
	}
	search := paramMap(p, "search", i)
	advanced := paramString(p, "advancedFilter", i)

	filter := BuildFilter([]FilterTerm{
		{Key: "first_name", Value: search["first_name"]},
		{Key: "last_name", Value: search["last_name"]},
		{Key: "email", Value: search["email"]},
		{Key: "phone_number", Value: search["phone_number"]},
	}, combineFrom(search["combineOperation"]), advanced)

	return &api.Request{
		Method: http.MethodGet,
		Path:   "/contacts",
		Query: BuildQuery(map[string]any{
			"limit":  limit,
			"filter": filter,
			"sort":   search["sort"],
		}),
	}, nil
}
