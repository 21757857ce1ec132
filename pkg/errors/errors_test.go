package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetadataForKnownCodes(t *testing.T) {
	tests := []struct {
		code      Code
		status    int
		exposed   bool
		detailsOK bool
	}{
		{code: CodeValidation, status: http.StatusUnprocessableEntity, exposed: true, detailsOK: true},
		{code: CodeUnauthorized, status: http.StatusUnauthorized, exposed: true},
		{code: CodeForbidden, status: http.StatusForbidden, exposed: true},
		{code: CodeNotFound, status: http.StatusNotFound, exposed: true},
		{code: CodeMethodNotAllowed, status: http.StatusMethodNotAllowed, exposed: true},
		{code: CodeInternal, status: http.StatusInternalServerError},
		{code: CodeDependency, status: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			meta := MetadataFor(tt.code)
			assert.Equal(t, tt.status, meta.HTTPStatus)
			assert.Equal(t, tt.exposed, meta.ExposeMessage)
			assert.Equal(t, tt.detailsOK, meta.DetailsAllowed)
			assert.NotEmpty(t, meta.PublicMessage)
		})
	}
}

func TestMetadataForUnknownCodeDefaultsToInternal(t *testing.T) {
	meta := MetadataFor("SOMETHING_UNKNOWN")
	assert.Equal(t, http.StatusInternalServerError, meta.HTTPStatus)
	assert.False(t, meta.ExposeMessage)
}

func TestErrorConstructors(t *testing.T) {
	base := New(CodeValidation, "missing foo")
	assert.Equal(t, CodeValidation, base.Code())
	assert.Equal(t, "missing foo", base.Message())
	assert.Nil(t, base.Details())

	base.WithDetails(map[string][]string{"foo": {"required"}})
	assert.NotNil(t, base.Details())

	cause := stdErrors.New("boom")
	wrapped := Wrap(CodeInternal, cause, "create order")
	assert.True(t, stdErrors.Is(wrapped, cause))
	assert.Equal(t, CodeInternal, wrapped.Code())
	assert.Contains(t, wrapped.Error(), "boom")
}

func TestAsFindsTypedErrorThroughWrapping(t *testing.T) {
	err := fmt.Errorf("outer: %w", New(CodeForbidden, "no entry"))
	got := As(err)
	require.NotNil(t, got)
	assert.Equal(t, CodeForbidden, got.Code())
	assert.True(t, IsCode(err, CodeForbidden))
	assert.False(t, IsCode(err, CodeNotFound))
	assert.Nil(t, As(nil))
}

func TestDumpCollectsChain(t *testing.T) {
	err := Wrap(CodeInternal, stdErrors.New("disk full"), "save order")
	dump := Dump(err)
	assert.Equal(t, CodeInternal, dump.Code)
	assert.Len(t, dump.Chain, 2)
	assert.Empty(t, dump.PGCode)
	assert.Equal(t, ErrorDump{}, Dump(nil))
}

func TestPublicExposesInternalMessage(t *testing.T) {
	assert.False(t, New(CodeInternal, "db exploded").Exposed())
	assert.True(t, New(CodeInternal, "Failed to delete the order.").Public().Exposed())
	assert.True(t, New(CodeNotFound, "gone").Exposed())
}
