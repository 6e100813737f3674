package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"encoding/xml"

	"gopkg.in/yaml.v3"

	"github.com/diillson/aws-iam-access-report-go/internal/domain/entity"
)

func encodeCSV(buf *bytes.Buffer, records []entity.AccessRecord) error {
	writer := csv.NewWriter(buf)
	if err := writer.Write(entity.AccessRecordColumns); err != nil {
		return err
	}
	for _, record := range records {
		if err := writer.Write(record.Values()); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func encodeJSON(buf *bytes.Buffer, records []entity.AccessRecord) error {
	encoder := json.NewEncoder(buf)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(nonNil(records))
}

func encodeYAML(buf *bytes.Buffer, records []entity.AccessRecord) error {
	encoder := yaml.NewEncoder(buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(nonNil(records)); err != nil {
		return err
	}
	return encoder.Close()
}

// xmlReport é a raiz <Report> com um <Record> por registro.
type xmlReport struct {
	XMLName xml.Name              `xml:"Report"`
	Records []entity.AccessRecord `xml:"Record"`
}

func encodeXML(buf *bytes.Buffer, records []entity.AccessRecord) error {
	buf.WriteString(xml.Header)
	encoder := xml.NewEncoder(buf)
	encoder.Indent("", "  ")
	if err := encoder.Encode(xmlReport{Records: records}); err != nil {
		return err
	}
	if err := encoder.Close(); err != nil {
		return err
	}
	buf.WriteString("\n")
	return nil
}
