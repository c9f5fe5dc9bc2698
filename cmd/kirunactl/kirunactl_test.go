package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kiruna-explorer/internal/diagram"
)

const boundary = "../../internal/geo/testdata/kiruna.geojson"

func run(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

type validateOut struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

func TestValidateValid(t *testing.T) {
	out, err := run("validate", "testdata/doc.json", "--boundary", boundary)
	require.NoError(t, err)
	var v validateOut
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.Valid)
}

func TestValidateInvalid(t *testing.T) {
	out, err := run("validate", "testdata/bad.json", "--boundary", boundary)
	assert.ErrorIs(t, err, errInvalid)
	var v validateOut
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	for _, f := range []string{"title", "stakeholders", "scale", "issuanceDate", "type"} {
		assert.Contains(t, v.Errors, f)
	}
}

func TestValidateForm(t *testing.T) {
	out, err := run("validate", "testdata/form.json", "--form", "--boundary", boundary)
	require.NoError(t, err, out)
}

func TestValidateMissingFile(t *testing.T) {
	_, err := run("validate", "testdata/nope.json", "--boundary", boundary)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errInvalid)
}

func TestLayout(t *testing.T) {
	out, err := run("layout", "testdata/docs.json", "--width", "1000", "--height", "600", "--seed", "3")
	require.NoError(t, err)
	var res diagram.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Len(t, res.Positions, 3)
	assert.Len(t, res.Links, 2)
	assert.Equal(t, 1, res.DroppedLinks)

	again, err := run("layout", "testdata/docs.json", "--width", "1000", "--height", "600", "--seed", "3")
	require.NoError(t, err)
	assert.Equal(t, out, again)

	_, err = run("layout", "testdata/docs.json", "--width", "0")
	assert.Error(t, err)
}
