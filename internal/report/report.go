// Package report assembles batch validation results into a report and
// renders it as text, JSON, YAML or XLSX.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/gowebpki/jcs"

	"github.com/AndreyAkinshin/voltcheck/internal/catalog"
	"github.com/AndreyAkinshin/voltcheck/internal/runner"
	"github.com/AndreyAkinshin/voltcheck/pkg/compliance"
)

// namespace scopes report IDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/AndreyAkinshin/voltcheck/report"))

// Meta describes the installation and catalog a report was produced for.
type Meta struct {
	Project   string
	Site      string
	Inspector string
	Catalog   catalog.Info
}

// Report is the result of validating a batch of records.
type Report struct {
	ID        string           `json:"id" yaml:"id"`
	Project   string           `json:"project,omitempty" yaml:"project,omitempty"`
	Site      string           `json:"site,omitempty" yaml:"site,omitempty"`
	Inspector string           `json:"inspector,omitempty" yaml:"inspector,omitempty"`
	Catalog   catalog.Info     `json:"catalog" yaml:"catalog"`
	Status    compliance.Level `json:"status" yaml:"status"`
	Summary   runner.Summary   `json:"summary" yaml:"summary"`
	Items     []Item           `json:"items" yaml:"items"`
}

// Item is one circuit in a report.
type Item struct {
	Circuit     string                           `json:"circuit" yaml:"circuit"`
	Description string                           `json:"description,omitempty" yaml:"description,omitempty"`
	Source      string                           `json:"source" yaml:"source"`
	Fingerprint string                           `json:"fingerprint" yaml:"fingerprint"`
	Record      compliance.TestRecord            `json:"record" yaml:"record"`
	Results     compliance.TestValidationResults `json:"results" yaml:"results"`
	Verdict     compliance.ComplianceVerdict     `json:"verdict" yaml:"verdict"`
}

// Build assembles a report. The ID is derived from the record fingerprints,
// so the same records always produce the same ID.
func Build(outcomes []runner.Outcome, meta Meta) (*Report, error) {
	r := &Report{
		Project:   meta.Project,
		Site:      meta.Site,
		Inspector: meta.Inspector,
		Catalog:   meta.Catalog,
		Status:    runner.Worst(outcomes),
		Summary:   runner.Summarize(outcomes),
		Items:     make([]Item, 0, len(outcomes)),
	}

	var fingerprints strings.Builder
	for _, o := range outcomes {
		fp, err := Fingerprint(o.Entry.Record)
		if err != nil {
			return nil, fmt.Errorf("fingerprint %s: %w", o.Entry.Circuit, err)
		}
		fingerprints.WriteString(fp)
		r.Items = append(r.Items, Item{
			Circuit:     o.Entry.Circuit,
			Description: o.Entry.Description,
			Source:      o.Entry.Source,
			Fingerprint: fp,
			Record:      o.Entry.Record,
			Results:     o.Results,
			Verdict:     o.Verdict,
		})
	}
	r.ID = uuid.NewSHA1(namespace, []byte(fingerprints.String())).String()
	return r, nil
}

// Fingerprint returns the hex SHA-256 of the RFC 8785 canonical JSON of a
// record.
func Fingerprint(record compliance.TestRecord) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", err
	}
	canonical, err := jcs.Transform(data)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}

// Failing returns the items whose verdict is Fail.
func (r *Report) Failing() []Item {
	var out []Item
	for _, it := range r.Items {
		if it.Verdict.Status == compliance.Fail {
			out = append(out, it)
		}
	}
	return out
}
