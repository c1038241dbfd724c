package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func sampleTable() Table {
	return Table{
		Sheet:  "勤怠",
		Header: []string{"社員番号", "日付", "備考"},
		Rows: [][]string{
			{"E001", "2024-10-01", "在宅勤務"},
			{"E001", "月合計", ""},
		},
	}
}

func TestWriteCSV_ShiftJIS(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleTable()))

	assert.NotContains(t, buf.String(), "社員番号", "output must not be UTF-8")
	assert.Contains(t, buf.String(), "\r\n")

	decoded := transform.NewReader(bytes.NewReader(buf.Bytes()), japanese.ShiftJIS.NewDecoder())
	records, err := csv.NewReader(decoded).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"社員番号", "日付", "備考"}, records[0])
	assert.Equal(t, "在宅勤務", records[1][2])
	assert.Equal(t, "月合計", records[2][1])
}

func TestWriteCSV_UnsupportedRuneReplaced(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, Table{Header: []string{"note"}, Rows: [][]string{{"ok 😀"}}})
	assert.NoError(t, err)
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleTable()))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("勤怠")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "社員番号", rows[0][0])
	assert.Equal(t, "E001", rows[1][0])
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, sampleTable(), Format("pdf")))
}

func TestFormat_ContentType(t *testing.T) {
	assert.Equal(t, ".csv", FormatCSV.Extension())
	assert.Equal(t, ".xlsx", FormatXLSX.Extension())
	assert.Contains(t, FormatCSV.ContentType(), "Shift_JIS")
}
