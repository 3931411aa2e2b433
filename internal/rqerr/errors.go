// Package rqerr defines the error kinds shared across roogle's packages.
//
// Every error roogle can return from a query carries a machine-readable
// Code alongside a human Message, so the HTTP surface can serialize it
// without re-deriving meaning from a formatted string.
package rqerr

import "encoding/json"

// Code enumerates the error kinds a query can fail with.
const (
	CodeParse         = "ERR_PARSE"
	CodeCrateNotFound = "ERR_CRATE_NOT_FOUND"
	CodeSetNotFound   = "ERR_SET_NOT_FOUND"
	CodeItemNotFound  = "ERR_ITEM_NOT_FOUND"
	CodeScopeSyntax   = "ERR_SCOPE_SYNTAX"
	CodeDeserialize   = "ERR_DESERIALIZE"
)

// Error is a uniform error payload for both human and JSON output.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

func (e Error) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

// JSON renders the error as a JSON object, for the HTTP surface.
func (e Error) JSON() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Wrap builds an Error with code and message, carrying inner's text as Detail.
func Wrap(code, msg string, inner error) error {
	if inner == nil {
		return Error{Code: code, Message: msg}
	}
	return Error{Code: code, Message: msg, Detail: inner.Error()}
}

// ParseError reports the first query-text position that failed to parse.
type ParseError struct {
	Pos         int
	Description string
}

func (e *ParseError) Error() string {
	return Error{Code: CodeParse, Message: e.Description}.Error()
}

// CrateNotFound reports a scope referencing an unknown crate.
type CrateNotFound struct {
	Name string
}

func (e *CrateNotFound) Error() string {
	return Error{Code: CodeCrateNotFound, Message: "crate `" + e.Name + "` is not present in the index"}.Error()
}

// SetNotFound reports a scope referencing a set name the index never
// loaded, distinct from a set that loaded with zero members.
type SetNotFound struct {
	Name string
}

func (e *SetNotFound) Error() string {
	return Error{Code: CodeSetNotFound, Message: "set `" + e.Name + "` is not present in the index"}.Error()
}

// ItemNotFound reports an index inconsistency: an id referenced from an
// impl that is absent from the crate's index or paths.
type ItemNotFound struct {
	ID    string
	Crate string
}

func (e *ItemNotFound) Error() string {
	return Error{
		Code:    CodeItemNotFound,
		Message: "item with id `" + e.ID + "` is not present in crate `" + e.Crate + "`",
	}.Error()
}

// ScopeSyntax reports a scope parameter not of the form `crate:...` or `set:...`.
type ScopeSyntax struct {
	Text string
}

func (e *ScopeSyntax) Error() string {
	return Error{Code: CodeScopeSyntax, Message: "invalid scope syntax: `" + e.Text + "`"}.Error()
}

// DeserializeError reports an index-load failure for a single crate file.
// Propagation policy: the offending file is logged and skipped; the
// process continues with the remaining crates.
type DeserializeError struct {
	File  string
	Cause error
}

func (e *DeserializeError) Error() string {
	return Error{Code: CodeDeserialize, Message: "failed to deserialize " + e.File, Detail: e.Cause.Error()}.Error()
}

func (e *DeserializeError) Unwrap() error { return e.Cause }
