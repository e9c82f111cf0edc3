package v1_test

import (
	"net/http"
	"testing"

	"github.com/pace-coach/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHeaderResources() {
	optionsHeaderTests := []struct {
		path     string
		response string
	}{
		{"http://example.com/v1", "GET, DELETE"},
		{"http://example.com/v1/structure", "GET, PATCH"},
		{"http://example.com/v1/structure/score", "POST"},
		{"http://example.com/v1/expense-items", "GET, POST"},
		{"http://example.com/v1/cycles", "GET, POST"},
		{"http://example.com/v1/cycles/current", "GET, PATCH"},
		{"http://example.com/v1/insights/score", "GET"},
		{"http://example.com/v1/insights/recommendation", "GET"},
		{"http://example.com/v1/insights/recommendation/buffer-build", "GET"},
		{"http://example.com/v1/insights/recommendation/buffer-build/alternative", "GET"},
		{"http://example.com/v1/insights/strategies", "GET"},
	}

	for _, tt := range optionsHeaderTests {
		suite.T().Run(tt.path, func(t *testing.T) {
			recorder := test.Request(suite.T(), http.MethodOptions, tt.path, "")

			assert.Equal(t, http.StatusNoContent, recorder.Code)
			assert.Equal(t, recorder.Header().Get("allow"), tt.response)
		})
	}
}
