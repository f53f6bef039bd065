package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common Error Codes
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
	ErrCodeNotImplemented     ErrorCode = "COMMON_015"
)

// Short aliases used at call sites throughout the codebase.
const (
	CodeInternal       = ErrCodeInternal
	CodeInvalidParam   = ErrCodeBadRequest
	CodeUnauthorized   = ErrCodeUnauthorized
	CodeForbidden      = ErrCodeForbidden
	CodeNotFound       = ErrCodeNotFound
	CodeConflict       = ErrCodeConflict
	CodeRateLimit      = ErrCodeTooManyRequests
	CodeNotImplemented = ErrCodeNotImplemented
	CodeOK             = ErrorCode("OK")
	CodeUnknown        = ErrorCode("UNKNOWN")

	// Domain specific aliases
	CodeAnswerNotFound    = ErrCodeAnswerNotFound
	CodeReferenceNotFound = ErrCodeReferenceNotFound
	CodeAnalysisNotFound  = ErrCodeAnalysisNotFound
	CodeNoReferenceData   = ErrCodeNoReferenceData

	// Infrastructure aliases
	CodeDBConnectionError = ErrCodeDatabaseError
	CodeDBQueryError      = ErrCodeDatabaseError
	CodeCacheError        = ErrCodeCacheError
	CodeMessageQueueError = ErrCodeExternalService
)

// Answer Module Error Codes
const (
	ErrCodeAnswerNotFound      ErrorCode = "ANS_001"
	ErrCodeAnswerAlreadyExists ErrorCode = "ANS_002"
	ErrCodeAnswerTextTooLong   ErrorCode = "ANS_003"
	ErrCodeAnswerInvalidID     ErrorCode = "ANS_004"
)

// Reference Answer Module Error Codes
const (
	ErrCodeReferenceNotFound      ErrorCode = "REF_001"
	ErrCodeReferenceAlreadyExists ErrorCode = "REF_002"
	ErrCodeReferenceEmptyText     ErrorCode = "REF_003"
	ErrCodeReferenceInvalidYear   ErrorCode = "REF_004"
	ErrCodeNoReferenceData        ErrorCode = "REF_005"
)

// Analysis Module Error Codes
const (
	ErrCodeAnalysisNotFound     ErrorCode = "ANL_001"
	ErrCodeAnalysisFailed       ErrorCode = "ANL_002"
	ErrCodeScoringFailed        ErrorCode = "ANL_003"
	ErrCodeFeedbackUnavailable  ErrorCode = "ANL_004"
	ErrCodeAnalysisPersistError ErrorCode = "ANL_005"
)

// Text Processing Error Codes
const (
	ErrCodeLemmatizerInitFailed ErrorCode = "TXT_001"
	ErrCodeLexiconInvalid       ErrorCode = "TXT_002"
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,
	ErrCodeNotImplemented:     http.StatusNotImplemented,

	ErrCodeAnswerNotFound:      http.StatusNotFound,
	ErrCodeAnswerAlreadyExists: http.StatusConflict,
	ErrCodeAnswerTextTooLong:   http.StatusBadRequest,
	ErrCodeAnswerInvalidID:     http.StatusBadRequest,

	ErrCodeReferenceNotFound:      http.StatusNotFound,
	ErrCodeReferenceAlreadyExists: http.StatusConflict,
	ErrCodeReferenceEmptyText:     http.StatusBadRequest,
	ErrCodeReferenceInvalidYear:   http.StatusBadRequest,
	ErrCodeNoReferenceData:        http.StatusNotFound,

	ErrCodeAnalysisNotFound:     http.StatusNotFound,
	ErrCodeAnalysisFailed:       http.StatusInternalServerError,
	ErrCodeScoringFailed:        http.StatusInternalServerError,
	ErrCodeFeedbackUnavailable:  http.StatusInternalServerError,
	ErrCodeAnalysisPersistError: http.StatusInternalServerError,

	ErrCodeLemmatizerInitFailed: http.StatusInternalServerError,
	ErrCodeLexiconInvalid:       http.StatusInternalServerError,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",
	ErrCodeNotImplemented:     "not implemented",

	ErrCodeAnswerNotFound:      "answer not found",
	ErrCodeAnswerAlreadyExists: "answer already exists",
	ErrCodeAnswerTextTooLong:   "answer text exceeds maximum length",
	ErrCodeAnswerInvalidID:     "invalid answer identifier",

	ErrCodeReferenceNotFound:      "reference answer not found",
	ErrCodeReferenceAlreadyExists: "reference answer already exists",
	ErrCodeReferenceEmptyText:     "reference answer text must not be empty",
	ErrCodeReferenceInvalidYear:   "invalid reference answer year",
	ErrCodeNoReferenceData:        "insufficient data to compare",

	ErrCodeAnalysisNotFound:     "analysis not found",
	ErrCodeAnalysisFailed:       "similarity analysis failed",
	ErrCodeScoringFailed:        "similarity scoring failed",
	ErrCodeFeedbackUnavailable:  "feedback generation failed",
	ErrCodeAnalysisPersistError: "failed to persist analysis",

	ErrCodeLemmatizerInitFailed: "failed to initialize lemmatizer",
	ErrCodeLexiconInvalid:       "invalid domain lexicon",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
