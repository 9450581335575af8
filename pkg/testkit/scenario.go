// Package testkit runs JSON-described HTTP scenarios against a handler.
//
// A scenario file holds one scenario or an array of them:
//
//	{
//	  "name": "guest cannot add menu items",
//	  "requestMethod": "POST",
//	  "requestUrl": "/menu",
//	  "as": "guest@example.com",
//	  "requestBody": {"name": "Soup", "category": "soup", "price": 4},
//	  "expectedCode": 403,
//	  "response": {"message": "Forbidden access"}
//	}
//
// "as" signs the request with a bearer token for that email. "response" is
// matched as a subset: only the keys it names are compared, so generated IDs
// can be left out. Bodies may also live in sibling files named by
// requestFileName / responseFileName.
package testkit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Scenario describes a single request and its expected outcome.
type Scenario struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	RequestMethod   string            `json:"requestMethod"`
	RequestURL      string            `json:"requestUrl"`
	As              string            `json:"as"`
	Headers         map[string]string `json:"headers"`
	RequestBody     json.RawMessage   `json:"requestBody"`
	RequestFileName string            `json:"requestFileName"`

	ExpectedCode     int             `json:"expectedCode"`
	Response         json.RawMessage `json:"response"`
	ResponseFileName string          `json:"responseFileName"`

	dir string
}

// LoadScenarios reads one scenario or an array of scenarios from path.
func LoadScenarios(path string) ([]*Scenario, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("testkit: resolve path %q: %w", path, err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("testkit: read %q: %w", abs, err)
	}

	var scenarios []*Scenario
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &scenarios)
	} else {
		var s Scenario
		err = json.Unmarshal(trimmed, &s)
		scenarios = []*Scenario{&s}
	}
	if err != nil {
		return nil, fmt.Errorf("testkit: parse %q: %w", abs, err)
	}

	for i, s := range scenarios {
		s.dir = filepath.Dir(abs)
		if err := s.validate(); err != nil {
			return nil, fmt.Errorf("testkit: invalid scenario %d in %q: %w", i, abs, err)
		}
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.RequestURL == "" {
		return fmt.Errorf("requestUrl is required")
	}
	if s.ExpectedCode == 0 {
		return fmt.Errorf("expectedCode is required")
	}
	if s.RequestMethod == "" {
		s.RequestMethod = "GET"
	}
	return nil
}

// Body returns the request body, inline or from RequestFileName.
func (s *Scenario) Body() ([]byte, error) {
	if len(s.RequestBody) > 0 {
		return s.RequestBody, nil
	}
	return s.readSibling(s.RequestFileName)
}

// Expected returns the expected response subset, inline or from
// ResponseFileName. Nil means the body is not checked.
func (s *Scenario) Expected() ([]byte, error) {
	if len(s.Response) > 0 {
		return s.Response, nil
	}
	return s.readSibling(s.ResponseFileName)
}

func (s *Scenario) readSibling(name string) ([]byte, error) {
	if name == "" {
		return nil, nil
	}
	if !filepath.IsAbs(name) {
		name = filepath.Join(s.dir, name)
	}
	return os.ReadFile(name)
}
