package copilot

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SearchInput holds the caller-supplied parameters of a Copilot search.
// Zero values mean "not requested": a PageSize of 0, an empty
// FilterExpression and a nil or empty ResourceMetadata are all left out of
// the outgoing request.
type SearchInput struct {
	Query            string
	PageSize         int
	FilterExpression string
	ResourceMetadata []string
}

// Validate checks the input against the limits the search API documents.
// A query that is empty or only whitespace is refused. A PageSize of 0 is
// valid and means the server default applies.
func (in SearchInput) Validate() error {
	if strings.TrimSpace(in.Query) == "" {
		return fmt.Errorf("%w: query cannot be blank", ErrInvalidInput)
	}
	if n := utf8.RuneCountInString(in.Query); n > MaxQueryLength {
		return fmt.Errorf("%w: query is %d characters (max %d)", ErrInvalidInput, n, MaxQueryLength)
	}
	if in.PageSize < 0 || in.PageSize > MaxPageSize {
		return fmt.Errorf("%w: page size %d out of range %d-%d", ErrInvalidInput, in.PageSize, MinPageSize, MaxPageSize)
	}
	return nil
}

// RequestBody is the JSON body posted to the search endpoint.
type RequestBody struct {
	Query       string       `json:"query"`
	PageSize    int          `json:"pageSize,omitempty"`
	DataSources *DataSources `json:"dataSources,omitempty"`
}

// DataSources scopes the search to specific content repositories.
type DataSources struct {
	OneDrive *OneDriveDataSource `json:"oneDrive,omitempty"`
}

// OneDriveDataSource restricts and shapes results coming from OneDrive.
type OneDriveDataSource struct {
	FilterExpression      string   `json:"filterExpression,omitempty"`
	ResourceMetadataNames []string `json:"resourceMetadataNames,omitempty"`
}

// BuildRequestBody shapes a SearchInput into the request body. Optional keys
// are set only when their input is non-empty, so they are absent from the
// serialized JSON rather than null.
func BuildRequestBody(in SearchInput) RequestBody {
	var dataSources DataSources

	if in.FilterExpression != "" || len(in.ResourceMetadata) > 0 {
		dataSources.OneDrive = &OneDriveDataSource{}
		if in.FilterExpression != "" {
			dataSources.OneDrive.FilterExpression = in.FilterExpression
		}
		if len(in.ResourceMetadata) > 0 {
			names := make([]string, len(in.ResourceMetadata))
			copy(names, in.ResourceMetadata)
			dataSources.OneDrive.ResourceMetadataNames = names
		}
	}

	body := RequestBody{Query: in.Query}

	if in.PageSize != 0 {
		body.PageSize = in.PageSize
	}

	if dataSources.OneDrive != nil {
		body.DataSources = &dataSources
	}

	return body
}
