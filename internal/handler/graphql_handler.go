package handler

import (
	"net/http"

	"github.com/graphql-go/graphql"
	"github.com/labstack/echo/v4"

	"github.com/johnboyce/otel-motel/internal/dto"
)

// GraphQLHandler serves the single /graphql endpoint. All domain errors
// travel inside the GraphQL result envelope per convention; only a
// malformed request body is an HTTP-level error.
type GraphQLHandler struct {
	schema graphql.Schema
}

func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

func (h *GraphQLHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/graphql", h.Execute)
	e.GET("/graphql", h.Execute)
}

func (h *GraphQLHandler) Execute(c echo.Context) error {
	var req dto.GraphQLRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if req.Query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "query is required")
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        c.Request().Context(),
	})

	return c.JSON(http.StatusOK, result)
}
