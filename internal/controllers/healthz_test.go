package controllers_test

import (
	"net/http"

	"github.com/luy-tracker/backend/test"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestOptionsHealthz() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodOptions, "http://example.com/healthz", "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)
	assert.Equal(suite.T(), "OPTIONS, GET", recorder.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGetHealthz() {
	recorder := test.Request(suite.controller, suite.T(), http.MethodGet, "http://example.com/healthz", "")
	suite.assertHTTPStatus(&recorder, http.StatusNoContent)
}
