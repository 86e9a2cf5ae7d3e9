// Package schema composes every facade operation into one GraphQL surface.
// Field names are the facade's own, decoupled from the three backends'
// wire shapes. Read resolvers return the facade error unchanged so the
// engine reports it in the response errors list; write resolvers return
// the facade envelope and never error.
package schema

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"

	"github.com/openloophealth/openloop-client-go/internal/facade"
	"github.com/openloophealth/openloop-client-go/internal/healthie"
)

// jsonScalar passes arbitrary JSON values through untouched. Used for the
// free-form TRT form payload and the backend's echo of it.
var jsonScalar = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "JSON",
	Description: "Arbitrary JSON value.",
	Serialize: func(value interface{}) interface{} {
		return value
	},
	ParseValue: func(value interface{}) interface{} {
		return value
	},
	ParseLiteral: parseJSONLiteral,
})

func parseJSONLiteral(valueAST ast.Value) interface{} {
	switch v := valueAST.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.BooleanValue:
		return v.Value
	case *ast.IntValue:
		return v.Value
	case *ast.FloatValue:
		return v.Value
	case *ast.ObjectValue:
		out := make(map[string]interface{}, len(v.Fields))
		for _, f := range v.Fields {
			out[f.Name.Value] = parseJSONLiteral(f.Value)
		}
		return out
	case *ast.ListValue:
		out := make([]interface{}, 0, len(v.Values))
		for _, item := range v.Values {
			out = append(out, parseJSONLiteral(item))
		}
		return out
	default:
		return nil
	}
}

var locationType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Location",
	Fields: graphql.Fields{
		"line1":   &graphql.Field{Type: graphql.String},
		"line2":   &graphql.Field{Type: graphql.String},
		"city":    &graphql.Field{Type: graphql.String},
		"state":   &graphql.Field{Type: graphql.String},
		"zip":     &graphql.Field{Type: graphql.String},
		"country": &graphql.Field{Type: graphql.String},
	},
})

var patientType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Patient",
	Fields: graphql.Fields{
		"id":                         &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"firstName":                  &graphql.Field{Type: graphql.String},
		"lastName":                   &graphql.Field{Type: graphql.String},
		"name":                       &graphql.Field{Type: graphql.String},
		"email":                      &graphql.Field{Type: graphql.String},
		"phoneNumber":                &graphql.Field{Type: graphql.String},
		"dob":                        &graphql.Field{Type: graphql.String},
		"gender":                     &graphql.Field{Type: graphql.String},
		"height":                     &graphql.Field{Type: graphql.String},
		"weight":                     &graphql.Field{Type: graphql.String},
		"age":                        &graphql.Field{Type: graphql.Int},
		"timezone":                   &graphql.Field{Type: graphql.String},
		"dietitianId":                &graphql.Field{Type: graphql.String},
		"additionalRecordIdentifier": &graphql.Field{Type: graphql.String},
		"bmiPercentile":              &graphql.Field{Type: graphql.Float},
		"nextApptDate":               &graphql.Field{Type: graphql.String},
		"createdAt":                  &graphql.Field{Type: graphql.String},
		"updatedAt":                  &graphql.Field{Type: graphql.String},
		"location":                   &graphql.Field{Type: locationType},
	},
})

var appointmentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Appointment",
	Fields: graphql.Fields{
		"id":                  &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
		"date":                &graphql.Field{Type: graphql.String},
		"contactType":         &graphql.Field{Type: graphql.String},
		"createdAt":           &graphql.Field{Type: graphql.String},
		"length":              &graphql.Field{Type: graphql.Int},
		"location":            &graphql.Field{Type: graphql.String},
		"providerName":        &graphql.Field{Type: graphql.String},
		"appointmentTypeName": &graphql.Field{Type: graphql.String},
		"appointmentTypeId":   &graphql.Field{Type: graphql.String},
	},
})

var labReportMetadataType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LabReportMetadata",
	Fields: graphql.Fields{
		"patient":      &graphql.Field{Type: graphql.String},
		"age":          &graphql.Field{Type: graphql.Int},
		"dateReported": &graphql.Field{Type: graphql.String},
	},
})

var labBiomarkerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LabBiomarker",
	Fields: graphql.Fields{
		"name":            &graphql.Field{Type: graphql.String},
		"value":           &graphql.Field{Type: jsonScalar},
		"unit":            &graphql.Field{Type: graphql.String},
		"minRangeValue":   &graphql.Field{Type: jsonScalar},
		"maxRangeValue":   &graphql.Field{Type: jsonScalar},
		"isAboveMaxRange": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"isBelowMinRange": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var labResultsType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LabResults",
	Fields: graphql.Fields{
		"metadata": &graphql.Field{Type: labReportMetadataType},
		"results":  &graphql.Field{Type: graphql.NewList(graphql.NewNonNull(labBiomarkerType))},
	},
})

var documentType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Document",
	Fields: graphql.Fields{
		"id":      &graphql.Field{Type: graphql.ID},
		"ownerId": &graphql.Field{Type: graphql.String},
		"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
	},
})

var formResponseType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FormResponse",
	Fields: graphql.Fields{
		"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"message": &graphql.Field{Type: graphql.String},
		"data":    &graphql.Field{Type: jsonScalar},
	},
})

var errorsField = &graphql.Field{
	Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String))),
}

var patientResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "PatientResult",
	Fields: graphql.Fields{
		"patient": &graphql.Field{Type: patientType},
		"errors":  errorsField,
	},
})

var uploadDocumentResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "UploadDocumentResult",
	Fields: graphql.Fields{
		"document": &graphql.Field{Type: documentType},
		"errors":   errorsField,
	},
})

var createMetricEntryResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateMetricEntryResult",
	Fields: graphql.Fields{
		"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"entryId": &graphql.Field{Type: graphql.String},
		"errors":  errorsField,
	},
})

var createInvoiceResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateInvoiceResult",
	Fields: graphql.Fields{
		"success":   &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
		"invoiceId": &graphql.Field{Type: graphql.String},
		"errors":    errorsField,
	},
})

var createTrtFormResultType = graphql.NewObject(graphql.ObjectConfig{
	Name: "CreateTrtFormResult",
	Fields: graphql.Fields{
		"response": &graphql.Field{Type: formResponseType},
		"errors":   errorsField,
	},
})

var locationInputType = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "LocationInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"line1":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"line2":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"city":    &graphql.InputObjectFieldConfig{Type: graphql.String},
		"state":   &graphql.InputObjectFieldConfig{Type: graphql.String},
		"zip":     &graphql.InputObjectFieldConfig{Type: graphql.String},
		"country": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

// New builds the composed schema over the facade.
func New(f *facade.Facade) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"patient": &graphql.Field{
				Type: patientType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return f.Patient(p.Context, stringArg(p, "id"))
				},
			},
			"searchPatients": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(patientType)),
				Args: graphql.FieldConfigArgument{
					"keywords": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return f.SearchPatients(p.Context, stringArg(p, "keywords"))
				},
			},
			"patientAppointments": &graphql.Field{
				Type: graphql.NewList(graphql.NewNonNull(appointmentType)),
				Args: graphql.FieldConfigArgument{
					"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"filter": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return f.PatientAppointments(p.Context, stringArg(p, "userId"), stringArg(p, "filter"))
				},
			},
			"labResults": &graphql.Field{
				Type: labResultsType,
				Args: graphql.FieldConfigArgument{
					"orderId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return f.LabResults(p.Context, stringArg(p, "orderId"))
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createPatient": &graphql.Field{
				Type: patientResultType,
				Args: graphql.FieldConfigArgument{
					"firstName":                  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"lastName":                   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":                      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"phoneNumber":                &graphql.ArgumentConfig{Type: graphql.String},
					"dietitianId":                &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"userGroupId":                &graphql.ArgumentConfig{Type: graphql.String},
					"additionalRecordIdentifier": &graphql.ArgumentConfig{Type: graphql.String},
					"skippedEmail":               &graphql.ArgumentConfig{Type: graphql.Boolean},
					"dontSendWelcome":            &graphql.ArgumentConfig{Type: graphql.Boolean},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := healthie.CreateClientInput{
						FirstName:                  stringArg(p, "firstName"),
						LastName:                   stringArg(p, "lastName"),
						Email:                      stringArg(p, "email"),
						PhoneNumber:                stringArg(p, "phoneNumber"),
						DietitianID:                stringArg(p, "dietitianId"),
						UserGroupID:                stringArg(p, "userGroupId"),
						AdditionalRecordIdentifier: stringArg(p, "additionalRecordIdentifier"),
						SkippedEmail:               boolArg(p, "skippedEmail"),
						DontSendWelcome:            boolArg(p, "dontSendWelcome"),
					}
					return f.CreatePatient(p.Context, input), nil
				},
			},
			"updatePatient": &graphql.Field{
				Type: patientResultType,
				Args: graphql.FieldConfigArgument{
					"id":                         &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"dob":                        &graphql.ArgumentConfig{Type: graphql.String},
					"gender":                     &graphql.ArgumentConfig{Type: graphql.String},
					"height":                     &graphql.ArgumentConfig{Type: graphql.String},
					"additionalRecordIdentifier": &graphql.ArgumentConfig{Type: graphql.String},
					"location":                   &graphql.ArgumentConfig{Type: locationInputType},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := healthie.UpdateClientInput{
						ID:                         stringArg(p, "id"),
						DOB:                        stringArg(p, "dob"),
						Gender:                     stringArg(p, "gender"),
						Height:                     stringArg(p, "height"),
						AdditionalRecordIdentifier: stringArg(p, "additionalRecordIdentifier"),
						Location:                   locationArg(p, "location"),
					}
					return f.UpdatePatient(p.Context, input), nil
				},
			},
			"uploadDocument": &graphql.Field{
				Type: uploadDocumentResultType,
				Args: graphql.FieldConfigArgument{
					"fileString":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"displayName": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"relUserId":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := healthie.CreateDocumentInput{
						FileString:  stringArg(p, "fileString"),
						DisplayName: stringArg(p, "displayName"),
						RelUserID:   stringArg(p, "relUserId"),
					}
					return f.UploadDocument(p.Context, input), nil
				},
			},
			"createMetricEntry": &graphql.Field{
				Type: createMetricEntryResultType,
				Args: graphql.FieldConfigArgument{
					"category":   &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"type":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"metricStat": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"userId":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"createdAt":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := healthie.CreateEntryInput{
						Category:   stringArg(p, "category"),
						Type:       stringArg(p, "type"),
						MetricStat: stringArg(p, "metricStat"),
						UserID:     stringArg(p, "userId"),
						CreatedAt:  stringArg(p, "createdAt"),
					}
					return f.CreateMetricEntry(p.Context, input), nil
				},
			},
			"createInvoice": &graphql.Field{
				Type: createInvoiceResultType,
				Args: graphql.FieldConfigArgument{
					"recipientId":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"price":            &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"status":           &graphql.ArgumentConfig{Type: graphql.String},
					"servicesProvided": &graphql.ArgumentConfig{Type: graphql.String},
					"offeringId":       &graphql.ArgumentConfig{Type: graphql.String},
					"invoiceType":      &graphql.ArgumentConfig{Type: graphql.String},
					"notes":            &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					input := healthie.CreateInvoiceInput{
						RecipientID:      stringArg(p, "recipientId"),
						Price:            stringArg(p, "price"),
						Status:           stringArg(p, "status"),
						ServicesProvided: stringArg(p, "servicesProvided"),
						OfferingID:       stringArg(p, "offeringId"),
						InvoiceType:      stringArg(p, "invoiceType"),
						Notes:            stringArg(p, "notes"),
					}
					return f.CreateInvoice(p.Context, input), nil
				},
			},
			"createTrtForm": &graphql.Field{
				Type: createTrtFormResultType,
				Args: graphql.FieldConfigArgument{
					"patientId":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"formReferenceId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"formData":        &graphql.ArgumentConfig{Type: jsonScalar},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					formRef, _ := p.Args["formReferenceId"].(int)
					formData, _ := p.Args["formData"].(map[string]interface{})
					return f.CreateTrtForm(p.Context, stringArg(p, "patientId"), formRef, formData), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

func stringArg(p graphql.ResolveParams, name string) string {
	s, _ := p.Args[name].(string)
	return s
}

func boolArg(p graphql.ResolveParams, name string) *bool {
	if v, ok := p.Args[name].(bool); ok {
		return &v
	}
	return nil
}

func locationArg(p graphql.ResolveParams, name string) *healthie.LocationInput {
	m, ok := p.Args[name].(map[string]interface{})
	if !ok {
		return nil
	}
	loc := &healthie.LocationInput{}
	if v, ok := m["line1"].(string); ok {
		loc.Line1 = v
	}
	if v, ok := m["line2"].(string); ok {
		loc.Line2 = v
	}
	if v, ok := m["city"].(string); ok {
		loc.City = v
	}
	if v, ok := m["state"].(string); ok {
		loc.State = v
	}
	if v, ok := m["zip"].(string); ok {
		loc.Zip = v
	}
	if v, ok := m["country"].(string); ok {
		loc.Country = v
	}
	return loc
}
