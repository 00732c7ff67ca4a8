// Package schema describes submission records as an OpenAPI 3 document so
// backends and API clients can share one contract. The form_data object is
// generated from the catalog: one property per question, enums for choice
// questions and the required list from required questions.
package schema

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-pmsform/pkg/answers"
	"github.com/goliatone/go-pmsform/pkg/catalog"
)

// Component names used in the generated document.
const (
	FormDataSchema     = "FormData"
	RecordSchema       = "SubmissionRecord"
	StoredRecordSchema = "StoredRecord"
)

const openAPIVersion = "3.0.3"

// Options tweak the generated document.
type Options struct {
	Title   string
	Version string
}

// Build returns the OpenAPI document for cat.
func Build(cat catalog.Catalog, opts Options) *openapi3.T {
	title := opts.Title
	if title == "" {
		title = cat.Title
	}
	if title == "" {
		title = cat.ID
	}
	version := opts.Version
	if version == "" {
		version = "1.0.0"
	}

	formData := FormData(cat)
	record := recordSchema()
	stored := storedSchema()

	doc := &openapi3.T{
		OpenAPI: openAPIVersion,
		Info: &openapi3.Info{
			Title:       title,
			Version:     version,
			Description: cat.Description,
		},
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{
				FormDataSchema:     openapi3.NewSchemaRef("", formData),
				RecordSchema:       openapi3.NewSchemaRef("", record),
				StoredRecordSchema: openapi3.NewSchemaRef("", stored),
			},
		},
	}

	recordRef := componentRef(RecordSchema, record)
	storedRef := componentRef(StoredRecordSchema, stored)

	create := openapi3.NewOperation()
	create.OperationID = "createSubmission"
	create.Summary = "Store a completed questionnaire"
	create.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithRequired(true).WithJSONSchemaRef(recordRef),
	}
	create.Responses = openapi3.NewResponses(
		openapi3.WithStatus(201, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Stored").WithJSONSchemaRef(storedRef),
		}),
	)

	list := openapi3.NewOperation()
	list.OperationID = "listSubmissions"
	list.Summary = "List stored questionnaires, newest first"
	list.Parameters = openapi3.Parameters{
		{Value: openapi3.NewQueryParameter("limit").WithSchema(openapi3.NewIntegerSchema().WithMin(0))},
	}
	list.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Stored records").
				WithJSONSchema(openapi3.NewArraySchema().WithItems(storedRef.Value)),
		}),
	)

	get := openapi3.NewOperation()
	get.OperationID = "getSubmission"
	get.Summary = "Fetch one stored questionnaire"
	get.Parameters = openapi3.Parameters{
		{Value: openapi3.NewPathParameter("id").WithSchema(openapi3.NewStringSchema().WithFormat("uuid"))},
	}
	get.Responses = openapi3.NewResponses(
		openapi3.WithStatus(200, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Stored record").WithJSONSchemaRef(storedRef),
		}),
		openapi3.WithStatus(404, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Unknown id"),
		}),
	)

	doc.Paths = openapi3.NewPaths(
		openapi3.WithPath("/submissions", &openapi3.PathItem{Post: create, Get: list}),
		openapi3.WithPath("/submissions/{id}", &openapi3.PathItem{Get: get}),
	)
	return doc
}

// JSON validates the document for cat and encodes it with indentation.
func JSON(ctx context.Context, cat catalog.Catalog, opts Options) ([]byte, error) {
	doc := Build(cat, opts)
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("schema: invalid document: %w", err)
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: encode document: %w", err)
	}
	return out, nil
}

// FormData builds the object schema of the answer map for cat.
func FormData(cat catalog.Catalog) *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.Title = "Answers keyed by question id"
	obj.AdditionalProperties = openapi3.AdditionalProperties{Has: openapi3.BoolPtr(false)}

	for _, q := range cat.Questions() {
		obj.WithProperty(q.ID, questionSchema(q))
		if q.Required {
			obj.Required = append(obj.Required, q.ID)
		}
	}
	return obj
}

func questionSchema(q catalog.Question) *openapi3.Schema {
	var s *openapi3.Schema
	switch {
	case q.Type.IsMulti():
		item := openapi3.NewStringSchema().WithEnum(optionValues(q)...)
		s = openapi3.NewArraySchema().WithItems(item).WithUniqueItems(true)
	case q.Type.HasOptions():
		s = openapi3.NewStringSchema().WithEnum(optionValues(q)...)
	default:
		s = openapi3.NewStringSchema()
	}
	s.Title = q.Label
	s.Extensions = map[string]any{"x-question-type": string(q.Type)}
	return s
}

func recordSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("form_data", openapi3.NewObjectSchema().WithAnyAdditionalProperties()).
		WithProperty("submitter_name", openapi3.NewStringSchema()).
		WithProperty("target_timeline", openapi3.NewStringSchema()).
		WithProperty("deployment_model", openapi3.NewStringSchema()).
		WithProperty("multi_property_support", openapi3.NewBoolSchema()).
		WithProperty("white_labeled", openapi3.NewBoolSchema()).
		WithRequired([]string{"form_data"})
}

func storedSchema() *openapi3.Schema {
	return openapi3.NewObjectSchema().
		WithProperty("id", openapi3.NewStringSchema().WithFormat("uuid")).
		WithPropertyRef("record", componentRef(RecordSchema, recordSchema())).
		WithProperty("created_at", openapi3.NewDateTimeSchema()).
		WithRequired([]string{"id", "record", "created_at"})
}

func componentRef(name string, value *openapi3.Schema) *openapi3.SchemaRef {
	return openapi3.NewSchemaRef("#/components/schemas/"+name, value)
}

func optionValues(q catalog.Question) []any {
	out := make([]any, len(q.Options))
	for i, opt := range q.Options {
		out[i] = opt.Value
	}
	return out
}

// ErrInvalidFormData wraps schema violations reported by ValidateFormData.
var ErrInvalidFormData = errors.New("schema: form data does not match catalog schema")

// ValidateFormData checks values against the FormData schema of cat: known
// ids, value shapes, option membership and required keys. Emptiness is the
// validation package's concern and is not checked here.
func ValidateFormData(cat catalog.Catalog, values answers.Map) error {
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("schema: encode form data: %w", err)
	}
	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("schema: decode form data: %w", err)
	}
	if err := FormData(cat).VisitJSON(data, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFormData, err)
	}
	return nil
}
