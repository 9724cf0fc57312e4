package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(CodeInvalidExtension, "not a PDB file")

	assert.Equal(t, CodeInvalidExtension, err.Code)
	assert.Equal(t, "not a PDB file", err.Message)
	assert.NotEmpty(t, err.Stack)
	assert.Equal(t, "[STRUCT_001] not a PDB file", err.Error())
}

func TestWithDetail(t *testing.T) {
	base := New(CodeExampleNotFound, "example not found")
	detailed := base.WithDetail("name=9xyz.pdb")

	assert.Equal(t, "[STRUCT_006] example not found: name=9xyz.pdb", detailed.Error())
	// The original is not mutated.
	assert.Empty(t, base.Detail)

	var nilErr *AppError
	assert.Nil(t, nilErr.WithDetail("ignored"))
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, CodeDatabaseError, "failed to record upload")

	require.NotNil(t, err)
	assert.Equal(t, CodeDatabaseError, err.Code)
	assert.True(t, stderrors.Is(err, cause))
	assert.Nil(t, Wrap(nil, CodeDatabaseError, "no-op"))
}

func TestWrapPreservesCodeForUnknown(t *testing.T) {
	inner := New(CodeInvalidContent, "no ATOM or HETATM entries")
	outer := Wrap(inner, CodeUnknown, "upload rejected")

	assert.Equal(t, CodeInvalidContent, outer.Code)
}

func TestIsCode(t *testing.T) {
	inner := New(CodeDecodeFailure, "not valid UTF-8")
	wrapped := fmt.Errorf("handling upload: %w", inner)

	assert.True(t, IsCode(wrapped, CodeDecodeFailure))
	assert.False(t, IsCode(wrapped, CodeInvalidExtension))
	assert.False(t, IsCode(nil, CodeDecodeFailure))
}

func TestPredicates(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		notFound     bool
		validation   bool
	}{
		{"example not found", New(CodeExampleNotFound, "x"), true, false},
		{"invalid extension", New(CodeInvalidExtension, "x"), false, true},
		{"no file selected", New(CodeNoFileSelected, "x"), false, true},
		{"internal", New(CodeInternal, "x"), false, false},
		{"plain error", stderrors.New("plain"), false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.validation, IsValidation(tt.err))
		})
	}
}

func TestGetCodeAndHTTPStatus(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, CodeUnknown, GetCode(stderrors.New("plain")))
	assert.Equal(t, CodeInvalidContent, GetCode(New(CodeInvalidContent, "x")))

	assert.Equal(t, http.StatusBadRequest, HTTPStatus(New(CodeInvalidExtension, "x")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(New(CodeExampleNotFound, "x")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(stderrors.New("plain")))
}
