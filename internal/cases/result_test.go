package cases

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestResult_Matched(t *testing.T) {
	result := Scan("File not found: /x\n")

	matched := result.Matched()
	require.Len(t, matched, 1)
	assert.Equal(t, TitleMissingFile, matched[0].Title)
}

func TestResult_GetUnknownTitle(t *testing.T) {
	_, ok := Scan("").Get("no such case")
	assert.False(t, ok)
}

func TestResult_MarshalJSONKeepsOrder(t *testing.T) {
	result := Scan("error: Failed build dependencies:\n foo\n")

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Equal(t,
		`{"File not found":{"match":false},`+
			`"File not listed in %files":{"match":false},`+
			`"Build dependency not installed":{"match":true,"details":" foo\n"}}`,
		string(data))
}

func TestResult_MarshalJSONEmpty(t *testing.T) {
	data, err := json.Marshal(Result{})
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestResult_MarshalYAMLKeepsOrder(t *testing.T) {
	result := Scan("File not found: /x\n")

	data, err := yaml.Marshal(result)
	require.NoError(t, err)

	var node yaml.Node
	require.NoError(t, yaml.Unmarshal(data, &node))
	mapping := node.Content[0]
	require.Len(t, mapping.Content, 6)
	assert.Equal(t, TitleMissingFile, mapping.Content[0].Value)
	assert.Equal(t, TitleUnpackagedFile, mapping.Content[2].Value)
	assert.Equal(t, TitleMissingBuildDep, mapping.Content[4].Value)

	var decoded map[string]MatchResult
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, MatchResult{Matched: true, Details: "Nothing"}, decoded[TitleMissingFile])
	assert.Equal(t, MatchResult{Matched: false}, decoded[TitleMissingBuildDep])
}
