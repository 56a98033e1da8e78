//go:build integration

package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-petr/pet-ledger/cmd/httpserver"
	"github.com/go-petr/pet-ledger/internal/integrationtest"
	"github.com/go-petr/pet-ledger/pkg/web"
)

const configPath = "../../../configs"

func setupServer(t *testing.T) *httpserver.Server {
	t.Helper()
	return integrationtest.SetupServer(t, configPath)
}

// do sends the request and decodes the response body, with Data decoded into data.
func do(t *testing.T, server http.Handler, method, url string, body any, data any) (int, web.Response) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("Encoding request body error: %v", err)
		}
	}

	req := httptest.NewRequest(method, url, &buf)
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	res := web.Response{Data: data}
	if err := json.NewDecoder(recorder.Body).Decode(&res); err != nil {
		t.Fatalf("Decoding response body of %s %s error: %v", method, url, err)
	}

	return recorder.Code, res
}

func accountURL(id int64, action string) string {
	return fmt.Sprintf("/accounts/%d/%s", id, action)
}
