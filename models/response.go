package models

type Response struct {
	Success bool `json:"success"`
}

// ErrorResponse is the body sent for every failed request
type ErrorResponse struct {
	Detail interface{} `json:"detail"`
}

// ValidationError describes one rejected field of a request body
type ValidationError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

const (
	MissingField = "missing"
	StringType   = "string_type"
	FloatType    = "float_type"
	FloatParsing = "float_parsing"
	BoolType     = "bool_type"
	BoolParsing  = "bool_parsing"
	DictType     = "dict_type"
	JSONInvalid  = "json_invalid"
)
