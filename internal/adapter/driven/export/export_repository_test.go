package export

import (
	"encoding/json"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
	"github.com/diillson/aws-iam-access-report-go/internal/shared/types"
)

func aliceRecords() []entity.AccessRecord {
	return []entity.AccessRecord{
		{
			UserName:     "alice",
			PolicyName:   "ReadOnlyPolicy",
			PolicyArn:    "arn:aws:iam::policy/ReadOnlyPolicy",
			ServiceName:  "s3",
			ActionName:   "GetObject",
			LastAccessed: "2024-01-01T00:00:00",
		},
	}
}

func sampleRecords() []entity.AccessRecord {
	return append(aliceRecords(),
		entity.AccessRecord{
			UserName:     "alice",
			PolicyName:   "ReadOnlyPolicy",
			PolicyArn:    "arn:aws:iam::policy/ReadOnlyPolicy",
			ServiceName:  "Amazon EC2, \"classic\"",
			ActionName:   entity.NoActionData,
			LastAccessed: entity.NeverAccessed,
		},
	)
}

func TestExportCSV_AliceScenario(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	path, err := repo.Export(aliceRecords(), "csv", "report", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"UserName,PolicyName,PolicyArn,ServiceName,ActionName,LastAccessed\n"+
			"alice,ReadOnlyPolicy,arn:aws:iam::policy/ReadOnlyPolicy,s3,GetObject,2024-01-01T00:00:00\n",
		string(data))
}

func TestExportCSV_QuotesDelimiters(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().Export(sampleRecords(), "csv", "report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Amazon EC2, ""classic"""`)
}

func TestExportCSV_EmptySkipsFile(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().Export(nil, "csv", "report", dir)
	assert.ErrorIs(t, err, types.ErrEmptyReport)
	assert.Empty(t, path)

	_, statErr := os.Stat(filepath.Join(dir, "report.csv"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExportJSON_Empty(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().Export(nil, "json", "report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestExportJSON_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()
	path, err := NewExportRepository().Export(records, "json", "report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n  {\n    \"UserName\": \"alice\","))

	var decoded []entity.AccessRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, records, decoded)

	// a ordem das chaves segue as colunas
	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 2)
	text := string(data)
	last := -1
	for _, col := range entity.AccessRecordColumns {
		idx := strings.Index(text, `"`+col+`"`)
		require.Greater(t, idx, last, col)
		last = idx
	}
}

func TestExportYAML_BlockStyleAndOrder(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()
	path, err := NewExportRepository().Export(records, "yaml", "report", dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "report.yaml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, "- UserName: alice\n  PolicyName: ReadOnlyPolicy\n"))
	assert.NotContains(t, text, "{")

	var decoded []entity.AccessRecord
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, records, decoded)
}

func TestExportYAML_Empty(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().Export(nil, "yml", "report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestExportXML(t *testing.T) {
	dir := t.TempDir()
	records := sampleRecords()
	path, err := NewExportRepository().Export(records, "xml", "report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.HasPrefix(text, xml.Header+"<Report>"))
	assert.Contains(t, text, "<Record>\n    <UserName>alice</UserName>")
	assert.Contains(t, text, "<ActionName>NO_ACTION_DATA</ActionName>")
	assert.NotContains(t, text, "xmlns")

	var decoded xmlReport
	require.NoError(t, xml.Unmarshal(data, &decoded))
	assert.Equal(t, records, decoded.Records)
}

func TestExportXML_Empty(t *testing.T) {
	dir := t.TempDir()
	path, err := NewExportRepository().Export([]entity.AccessRecord{}, "xml", "report", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, xml.Header+"<Report></Report>\n", string(data))
}

func TestExportPDF(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository()

	for name, records := range map[string][]entity.AccessRecord{
		"full":  sampleRecords(),
		"empty": nil,
	} {
		path, err := repo.Export(records, "pdf", name, dir)
		require.NoError(t, err, name)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "%PDF-"), name)
	}
}

func TestExport_UnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	repo := NewExportRepository(WithFormats("csv", "json", "xml"))

	assert.False(t, repo.Supports("yaml"))
	assert.True(t, repo.Supports("JSON"))
	assert.Equal(t, []string{"csv", "json", "xml"}, repo.Formats())

	_, err := repo.Export(aliceRecords(), "yaml", "report", dir)
	require.ErrorIs(t, err, types.ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "csv, json, xml")

	_, statErr := os.Stat(filepath.Join(dir, "report.yaml"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExport_CreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "reports")
	path, err := NewExportRepository().Export(aliceRecords(), "json", "report", dir)
	require.NoError(t, err)
	assert.FileExists(t, path)
}
