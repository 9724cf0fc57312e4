package errors

import "net/http"

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes shared by every layer.
const (
	CodeInternal           ErrorCode = "COMMON_001"
	CodeBadRequest         ErrorCode = "COMMON_002"
	CodeNotFound           ErrorCode = "COMMON_003"
	CodeConflict           ErrorCode = "COMMON_004"
	CodeServiceUnavailable ErrorCode = "COMMON_005"
	CodeTimeout            ErrorCode = "COMMON_006"
	CodeValidation         ErrorCode = "COMMON_007"
	CodeSerialization      ErrorCode = "COMMON_008"
	CodeDatabaseError      ErrorCode = "COMMON_009"
	CodeCacheError         ErrorCode = "COMMON_010"
	CodeStorageError       ErrorCode = "COMMON_011"
	CodeExternalService    ErrorCode = "COMMON_012"

	CodeOK      ErrorCode = "OK"
	CodeUnknown ErrorCode = "UNKNOWN"
)

// Structure module error codes. These form the upload boundary taxonomy:
// every rejection happens before the summarizer is invoked.
const (
	CodeInvalidExtension   ErrorCode = "STRUCT_001"
	CodeInvalidContent     ErrorCode = "STRUCT_002"
	CodeDecodeFailure      ErrorCode = "STRUCT_003"
	CodeNoFileSelected     ErrorCode = "STRUCT_004"
	CodeStructureNotFound  ErrorCode = "STRUCT_005"
	CodeExampleNotFound    ErrorCode = "STRUCT_006"
	CodeExampleFetchFailed ErrorCode = "STRUCT_007"
	CodeStructureTooLarge  ErrorCode = "STRUCT_008"
)

// errorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var errorCodeHTTPStatus = map[ErrorCode]int{
	CodeInternal:           http.StatusInternalServerError,
	CodeBadRequest:         http.StatusBadRequest,
	CodeNotFound:           http.StatusNotFound,
	CodeConflict:           http.StatusConflict,
	CodeServiceUnavailable: http.StatusServiceUnavailable,
	CodeTimeout:            http.StatusGatewayTimeout,
	CodeValidation:         http.StatusBadRequest,
	CodeSerialization:      http.StatusInternalServerError,
	CodeDatabaseError:      http.StatusInternalServerError,
	CodeCacheError:         http.StatusInternalServerError,
	CodeStorageError:       http.StatusInternalServerError,
	CodeExternalService:    http.StatusBadGateway,

	CodeInvalidExtension:   http.StatusBadRequest,
	CodeInvalidContent:     http.StatusBadRequest,
	CodeDecodeFailure:      http.StatusBadRequest,
	CodeNoFileSelected:     http.StatusBadRequest,
	CodeStructureNotFound:  http.StatusNotFound,
	CodeExampleNotFound:    http.StatusNotFound,
	CodeExampleFetchFailed: http.StatusBadGateway,
	CodeStructureTooLarge:  http.StatusRequestEntityTooLarge,
}

// HTTPStatus returns the HTTP status code associated with c, or 500 for
// codes with no explicit mapping.
func (c ErrorCode) HTTPStatus() int {
	if status, ok := errorCodeHTTPStatus[c]; ok {
		return status
	}
	return http.StatusInternalServerError
}
