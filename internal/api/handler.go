// Package api mounts the composed GraphQL surface over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/openloophealth/openloop-client-go/pkg/logging"
)

// GraphQLHandler executes {query, variables} POST bodies against the
// composed schema and writes the engine's {data, errors} envelope back.
type GraphQLHandler struct {
	schema graphql.Schema
	logger *logging.Logger
}

// NewGraphQLHandler creates a handler over the given schema.
func NewGraphQLHandler(schema graphql.Schema, logger *logging.Logger) *GraphQLHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &GraphQLHandler{schema: schema, logger: logger}
}

type graphQLRequest struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type graphQLErrorResponse struct {
	Errors []graphQLErrorMessage `json:"errors"`
}

type graphQLErrorMessage struct {
	Message string `json:"message"`
}

func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()

	var req graphQLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("rejected graphql request", "request_id", requestID, "error", err)
		writeJSON(w, http.StatusBadRequest, graphQLErrorResponse{
			Errors: []graphQLErrorMessage{{Message: "invalid request body"}},
		})
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        r.Context(),
	})

	if len(result.Errors) > 0 {
		h.logger.Info("graphql request completed with errors",
			"request_id", requestID,
			"operation", req.OperationName,
			"error_count", len(result.Errors))
	} else {
		h.logger.Debug("graphql request completed",
			"request_id", requestID,
			"operation", req.OperationName)
	}

	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
