package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteJSON(t *testing.T) {
	values := map[string]any{"minSdk": 21, "applicationId": "a.b"}
	var buf bytes.Buffer
	err := WriteJSON(&buf, values)
	require.NoError(t, err)

	var parsed map[string]any
	err = json.Unmarshal(buf.Bytes(), &parsed)
	require.NoError(t, err)
	require.Equal(t, "a.b", parsed["applicationId"])
	require.InDelta(t, 21, parsed["minSdk"], 0)
}

func TestWriteValue(t *testing.T) {
	values := map[string]any{"packagingExcludes": []string{"META-INF/*", "META-INF/{AL2.0,LGPL2.1}"}}
	var buf bytes.Buffer
	err := WriteValue(&buf, values, "packagingExcludes")
	require.NoError(t, err)
	require.Equal(t, "META-INF/*,META-INF/{AL2.0,LGPL2.1}\n", buf.String())
}

func TestWriteValue_Unknown(t *testing.T) {
	var buf bytes.Buffer
	err := WriteValue(&buf, map[string]any{"minSdk": 21}, "ndkVersion")
	require.Error(t, err)
	require.Contains(t, err.Error(), "no value for option")
}

func TestWriteValues(t *testing.T) {
	values := map[string]any{"minifyEnabled": true, "minSdk": 23, "applicationId": "a.b"}
	var buf bytes.Buffer
	err := WriteValues(&buf, values)
	require.NoError(t, err)
	require.Equal(t, "applicationId=a.b\nminSdk=23\nminifyEnabled=true\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "", FormatValue(nil))
	require.Equal(t, "", FormatValue([]string{}))
	require.Equal(t, "a,b", FormatValue([]string{"a", "b"}))
	require.Equal(t, "34", FormatValue(34))
	require.Equal(t, "false", FormatValue(false))
}
