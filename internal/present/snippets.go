package present

import (
	"fmt"
	"strings"

	"github.com/MrSnakeDoc/apihub/internal/domain"
)

const sampleBody = `{"param1": "value1", "param2": "value2"}`

// EndpointCopy holds the copy payloads of one endpoint.
type EndpointCopy struct {
	Method      domain.Method `json:"method"`
	Path        string        `json:"path"`
	Description string        `json:"description"`
	URL         string        `json:"url"`
	Curl        string        `json:"curl"`
}

// Snippets are the copy-ready strings of a listing. They are templates, never
// executed.
type Snippets struct {
	BaseURL    string         `json:"baseUrl"`
	SandboxURL string         `json:"sandboxUrl"`
	FirstURL   string         `json:"firstEndpointUrl"`
	Curl       string         `json:"curl"`
	JavaScript string         `json:"javascript"`
	Python     string         `json:"python"`
	Endpoints  []EndpointCopy `json:"endpoints"`
}

// BuildSnippets derives every copy payload of l. The quick-start snippets use
// the first endpoint, or the bare base URL when l has none.
func BuildSnippets(l domain.Listing) Snippets {
	first := ""
	if ep, ok := l.FirstEndpoint(); ok {
		first = ep.Path
	}
	authHeader := authHeader(l.Auth.Type)

	s := Snippets{
		BaseURL:    l.BaseURL,
		SandboxURL: SandboxURL(l.BaseURL),
		FirstURL:   l.BaseURL + first,
		Curl:       Curl(domain.MethodGet, l.BaseURL+first, authHeader),
		JavaScript: javaScript(l.BaseURL+first, authHeader),
		Python:     python(l.BaseURL+first, authHeader),
		Endpoints:  make([]EndpointCopy, 0, len(l.Endpoints)),
	}
	for _, ep := range l.Endpoints {
		url := l.BaseURL + ep.Path
		s.Endpoints = append(s.Endpoints, EndpointCopy{
			Method:      ep.Method,
			Path:        ep.Path,
			Description: ep.Description,
			URL:         url,
			Curl:        Curl(ep.Method, url, authHeader),
		})
	}
	return s
}

// Curl renders a one-line curl command. Non-GET methods carry a sample JSON body.
func Curl(method domain.Method, url, authHeader string) string {
	var b strings.Builder
	fmt.Fprintf(&b, `curl -X %s "%s" -H "Content-Type: application/json"`, method, url)
	if authHeader != "" {
		fmt.Fprintf(&b, ` -H "%s"`, authHeader)
	}
	if method != domain.MethodGet {
		fmt.Fprintf(&b, ` -d '%s'`, sampleBody)
	}
	return b.String()
}

// SandboxURL swaps the first "api" of baseURL for "sandbox-api".
func SandboxURL(baseURL string) string {
	return strings.Replace(baseURL, "api", "sandbox-api", 1)
}

func authHeader(t domain.AuthType) string {
	switch t {
	case domain.AuthAPIKey:
		return "X-API-Key: YOUR_API_KEY"
	case domain.AuthOAuth2:
		return "Authorization: Bearer YOUR_ACCESS_TOKEN"
	}
	return ""
}

func javaScript(url, auth string) string {
	headers := `    "Content-Type": "application/json",`
	if k, v, ok := strings.Cut(auth, ": "); ok {
		headers += fmt.Sprintf("\n    %q: %q,", k, v)
	}
	return fmt.Sprintf(`// Using fetch (browser or Node.js 18+)
const fetchData = async () => {
  const response = await fetch(%q, {
    method: "GET",
    headers: {
%s
    },
  });

  const data = await response.json();
  console.log(data);
};

fetchData().catch(console.error);`, url, headers)
}

func python(url, auth string) string {
	headers := `    "Content-Type": "application/json",`
	if k, v, ok := strings.Cut(auth, ": "); ok {
		headers += fmt.Sprintf("\n    %q: %q,", k, v)
	}
	return fmt.Sprintf(`# Using the requests library
import requests

url = %q
headers = {
%s
}

response = requests.get(url, headers=headers)
data = response.json()
print(data)`, url, headers)
}
