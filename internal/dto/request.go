package dto

// GraphQLRequest is the standard GraphQL HTTP envelope.
type GraphQLRequest struct {
	Query         string         `json:"query" query:"query"`
	OperationName string         `json:"operationName" query:"operationName"`
	Variables     map[string]any `json:"variables"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}
