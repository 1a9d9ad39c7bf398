package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/canvaskit-io/canvas/pkg/canvas"
)

func TestAccountDomainsClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/accounts/search", r.URL.Path)
		assert.Equal(t, "state university", r.URL.Query().Get("name"))
		assert.Empty(t, r.URL.Query().Get("domain"))

		provider := "saml"
		domains := []canvas.AccountDomain{
			{Name: "State University", Domain: "canvas.stateu.edu", AuthenticationProvider: &provider},
			{Name: "State University Online", Domain: "online.stateu.edu"},
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(domains)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	domains, err := client.AccountDomains().Search(context.Background(), "state university", "")
	require.NoError(t, err)
	require.Len(t, domains, 2)
	assert.Equal(t, "canvas.stateu.edu", domains[0].Domain)
	require.NotNil(t, domains[0].AuthenticationProvider)
	assert.Equal(t, "saml", *domains[0].AuthenticationProvider)
	assert.Nil(t, domains[1].AuthenticationProvider)
}

func TestAccountDomainsClient_Search_OmitsEmptyFragments(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "domain=stateu", r.URL.RawQuery)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]canvas.AccountDomain{})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	domains, err := client.AccountDomains().Search(context.Background(), "", "stateu")
	require.NoError(t, err)
	assert.Empty(t, domains)
}
