package dcxml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDoc = `<?xml version="1.0" encoding="UTF-8"?>
<srw:searchRetrieveResponse xmlns:srw="http://www.loc.gov/zing/srw/"
                            xmlns:dc="http://purl.org/dc/elements/1.1/">
  <srw:numberOfRecords>2</srw:numberOfRecords>
  <srw:records>
    <srw:record>
      <srw:recordData>
        <dc:title>Algemene wet bestuursrecht</dc:title>
        <dc:identifier>BWBR0005537</dc:identifier>
      </srw:recordData>
    </srw:record>
    <srw:record>
      <srw:recordData>
        <dc:title>Omgevingswet</dc:title>
        <dc:identifier>BWBR0037885</dc:identifier>
      </srw:recordData>
    </srw:record>
  </srw:records>
</srw:searchRetrieveResponse>`

const srwNS = "http://www.loc.gov/zing/srw/"
const dcNS = "http://purl.org/dc/elements/1.1/"

func TestParse(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "searchRetrieveResponse", root.XMLName.Local)
	assert.Equal(t, srwNS, root.XMLName.Space)
}

func TestParseMalformed(t *testing.T) {
	_, err := Parse(strings.NewReader("<unclosed>"))
	assert.Error(t, err)

	_, err = Parse(strings.NewReader(""))
	assert.Error(t, err)
}

func TestFindQualified(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Equal(t, "2", root.Value(srwNS, "numberOfRecords"))
	assert.Equal(t, "Algemene wet bestuursrecht", root.Value(dcNS, "title"))
}

func TestFindLocalNameFallback(t *testing.T) {
	// Same document shape under an unknown namespace generation.
	doc := strings.ReplaceAll(sampleDoc,
		"http://www.loc.gov/zing/srw/",
		"http://docs.oasis-open.org/ns/search-ws/sruResponse")

	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	// Qualified lookup against the 1.2 namespace finds nothing, so the
	// local-name fallback must resolve the element anyway.
	assert.Equal(t, "2", root.Value(srwNS, "numberOfRecords"))
}

func TestFindAll(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	records := root.FindAll(srwNS, "record")
	require.Len(t, records, 2)

	assert.Equal(t, "Algemene wet bestuursrecht", records[0].Value(dcNS, "title"))
	assert.Equal(t, "Omgevingswet", records[1].Value(dcNS, "title"))
}

func TestFindAllLocalFallback(t *testing.T) {
	doc := strings.ReplaceAll(sampleDoc,
		"http://www.loc.gov/zing/srw/",
		"http://standaarden.overheid.nl/sru")

	root, err := Parse(strings.NewReader(doc))
	require.NoError(t, err)

	records := root.FindAll(srwNS, "record")
	assert.Len(t, records, 2)
}

func TestValueAny(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	record := root.FindAll(srwNS, "record")[0]
	assert.Equal(t, "Algemene wet bestuursrecht", record.ValueAny("abstract", "description", "title"))
	assert.Equal(t, "", record.ValueAny("abstract", "description"))
}

func TestFindMissing(t *testing.T) {
	root, err := Parse(strings.NewReader(sampleDoc))
	require.NoError(t, err)

	assert.Nil(t, root.Find(dcNS, "nonexistent"))
	assert.Equal(t, "", root.Value(dcNS, "nonexistent"))
	assert.Empty(t, root.FindAll(dcNS, "nonexistent"))
}
