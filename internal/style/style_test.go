package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLookup(t *testing.T) {
	tbl := Default()
	assert.Equal(t, Tag{Icon: "bi bi-gear-fill", Color: "#191A19"}, tbl.Lookup("Technical document", []string{"LKAB"}))
	assert.Equal(t, Tag{Icon: "bi bi-file-earmark-text-fill", Color: "#7D9593"}, tbl.Lookup("Unknown", []string{"Nobody"}))
	// 多个利益相关方统一使用默认颜色
	assert.Equal(t, "#7D9593", tbl.Lookup("Design document", []string{"LKAB", "Residents"}).Color)
	assert.Equal(t, "#7D9593", tbl.Lookup("Design document", nil).Color)
}

func TestLoadOverrides(t *testing.T) {
	tbl, err := Load("testdata/style.yaml")
	require.NoError(t, err)
	assert.Equal(t, "bi bi-tools", tbl.Lookup("Technical document", nil).Icon)
	assert.Equal(t, "bi bi-bricks", tbl.Lookup("Material effect", nil).Icon)
	assert.Equal(t, "bi bi-info-circle-fill", tbl.Lookup("Informative document", nil).Icon)
	assert.Equal(t, "#755953", tbl.Lookup("x", []string{"Kiruna kommun"}).Color)
	assert.Equal(t, "#000000", tbl.Lookup("x", []string{"a", "b"}).Color)

	// 覆盖不影响默认表
	assert.Equal(t, "bi bi-gear-fill", Default().Lookup("Technical document", nil).Icon)
}

func TestLoadErrors(t *testing.T) {
	tbl, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Lookup("Action document", nil), tbl.Lookup("Action document", nil))

	_, err = Load("testdata/missing.yaml")
	assert.Error(t, err)

	_, err = Default().merge([]byte("types: [1, 2"))
	assert.Error(t, err)
}
