// Copyright (c) 2026 YaMDb. All rights reserved.

package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromRequestDefaults(t *testing.T) {
	request := httptest.NewRequest("GET", "/titles", nil)

	params := FromRequest(request)
	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultLimit, params.Limit)
}

func TestFromRequestClamping(t *testing.T) {
	testCases := []struct {
		name          string
		query         string
		expectedPage  int
		expectedLimit int
	}{
		{"valid values", "page=3&limit=50", 3, 50},
		{"negative page", "page=-1&limit=10", DefaultPage, 10},
		{"zero limit", "page=2&limit=0", 2, DefaultLimit},
		{"limit above maximum", "page=1&limit=500", 1, DefaultLimit},
		{"non-numeric values", "page=abc&limit=xyz", DefaultPage, DefaultLimit},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			request := httptest.NewRequest("GET", "/titles?"+testCase.query, nil)

			params := FromRequest(request)
			assert.Equal(t, testCase.expectedPage, params.Page)
			assert.Equal(t, testCase.expectedLimit, params.Limit)
		})
	}
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 20, Params{Page: 2, Limit: 20}.Offset())
	assert.Equal(t, 90, Params{Page: 10, Limit: 10}.Offset())
	assert.Equal(t, 0, Params{Page: 0, Limit: 20}.Offset())
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(2, 20, 45)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 20, meta.Limit)
	assert.Equal(t, 45, meta.Total)
	assert.Equal(t, 3, meta.TotalPages)

	empty := NewMeta(1, 20, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
