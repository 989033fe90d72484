package sru

import (
	"io"

	"github.com/vondel-labs/begrip-cli/internal/logger"
	"github.com/vondel-labs/begrip-cli/internal/providers/dcxml"
)

// Known namespace generations. Endpoints answer under either the
// 1.2-era LoC envelope or the 2.0-era OASIS envelope; record payloads
// come in a plain Dublin Core flavour or the government "gzd" flavour.
// Parsing resolves qualified names first and falls back to local names
// because production endpoints mix generations in ways not fully known
// in advance.
const (
	nsSRW12       = "http://www.loc.gov/zing/srw/"
	nsSRW20       = "http://docs.oasis-open.org/ns/search-ws/sruResponse"
	nsDC          = "http://purl.org/dc/elements/1.1/"
	nsDCTerms     = "http://purl.org/dc/terms/"
	nsGZD         = "http://standaarden.overheid.nl/sru"
	nsDiagnostic  = "http://www.loc.gov/zing/srw/diagnostic/"
	nsDiagnostic2 = "http://docs.oasis-open.org/ns/search-ws/diagnostic"
)

// record is one parsed searchRetrieve hit.
type record struct {
	title       string
	identifier  string
	subject     string
	description string
}

// parseResponse parses a searchRetrieve response body under either
// namespace generation. Diagnostics are logged, never returned as
// errors; a malformed record is skipped, not fatal.
func parseResponse(r io.Reader, provider string) ([]record, error) {
	root, err := dcxml.Parse(r)
	if err != nil {
		return nil, err
	}

	logDiagnostics(root, provider)

	// FindAll resolves against the 1.2 namespace and falls back to the
	// bare local name, which also covers the 2.0 envelope.
	nodes := root.FindAll(nsSRW12, "record")

	records := make([]record, 0, len(nodes))
	for _, n := range nodes {
		data := n.Find(nsSRW12, "recordData")
		if data == nil {
			continue
		}

		rec := record{
			title:       fieldValue(data, nsDC, "title", "officieleTitel", "citeertitel"),
			identifier:  fieldValue(data, nsDC, "identifier", "url", "preferredUrl"),
			subject:     fieldValue(data, nsDC, "subject", "onderwerp"),
			description: fieldValue(data, nsDCTerms, "abstract", "description", "omschrijving"),
		}
		if rec.title == "" && rec.identifier == "" {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// fieldValue resolves a record field: qualified Dublin Core name
// first (with dcxml's built-in local-name fallback), then the
// government-schema synonyms for the same field.
func fieldValue(data *dcxml.Node, space, primary string, synonyms ...string) string {
	if v := data.Value(space, primary); v != "" {
		return v
	}
	return data.ValueAny(synonyms...)
}

// logDiagnostics extracts SRU diagnostic elements and logs them.
// Endpoints use diagnostics for soft failures (bad index, syntax
// hints); they are informational here, never errors.
func logDiagnostics(root *dcxml.Node, provider string) {
	for _, d := range root.FindAll(nsDiagnostic, "diagnostic") {
		uri := d.ValueAny("uri")
		message := d.ValueAny("message")
		details := d.ValueAny("details")
		if uri == "" && message == "" && details == "" {
			continue
		}
		logger.Info("SRU diagnostic from %s: uri=%s message=%q details=%q",
			provider, uri, message, details)
	}
}
