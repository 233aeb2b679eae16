// Package fixtures ships the seed dataset for the case study store.
package fixtures

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rpggio/policyatlas/internal/domain/casestudy"
	"gopkg.in/yaml.v3"
)

//go:embed casestudies.yaml
var seed []byte

// Seed returns the built-in dataset.
func Seed() ([]casestudy.Detail, error) {
	return Decode(bytes.NewReader(seed))
}

// LoadFile reads a dataset from a YAML file on disk.
func LoadFile(path string) ([]casestudy.Detail, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open fixtures: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// idNamespace scopes the name-based UUIDs given to records without an id.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://policyatlas/case-studies"))

// Decode parses a YAML list of case studies. Records without an id get a
// UUID derived from country, policy name and enactment date, so decoding the
// same file twice yields the same ids.
func Decode(r io.Reader) ([]casestudy.Detail, error) {
	var details []casestudy.Detail
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&details); err != nil {
		if err == io.EOF {
			return []casestudy.Detail{}, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	for i := range details {
		if strings.TrimSpace(details[i].ID) == "" {
			details[i].ID = derivedID(details[i].Summary)
		}
	}
	return details, nil
}

func derivedID(s casestudy.Summary) string {
	key := strings.Join([]string{
		strings.TrimSpace(s.Country),
		strings.TrimSpace(s.PolicyName),
		strings.TrimSpace(s.EnactedDate),
	}, "|")
	return uuid.NewSHA1(idNamespace, []byte(key)).String()
}
