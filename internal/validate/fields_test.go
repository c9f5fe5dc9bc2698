package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"kiruna-explorer/internal/model"
)

func TestIssuanceDate(t *testing.T) {
	for _, ok := range []string{"2020", "2020-10", "2020-10-05", "2024-02-29"} {
		assert.NoError(t, IssuanceDate(ok), ok)
	}
	for _, bad := range []string{"10-05", "10-05-2024", "2020- -05", "", "2020-13", "2021-02-29", "2020-1-05", "20201005", " 2020"} {
		assert.ErrorIs(t, IssuanceDate(bad), ErrIssuanceDate, bad)
	}
}

func TestScale(t *testing.T) {
	for _, ok := range []string{"1:8000", "Text", "Blueprint/Material effects", "1:1", "3:100"} {
		assert.NoError(t, Scale(ok), ok)
	}
	assert.ErrorIs(t, Scale("casa dolce casa"), ErrScaleFormat)
	assert.ErrorIs(t, Scale("100:3"), ErrScaleOrder)
	assert.ErrorIs(t, Scale("2:1"), ErrScaleOrder)
	assert.ErrorIs(t, Scale(""), ErrScaleRequired)
	assert.ErrorIs(t, Scale("0:10"), ErrScaleFormat)
	assert.ErrorIs(t, Scale("1:"), ErrScaleFormat)
	assert.ErrorIs(t, Scale("1:"+strings.Repeat("9", 70)), ErrScaleLength)
	assert.ErrorIs(t, Scale("1:99999999999999999999999"), ErrScaleFormat)
}

func TestStakeholders(t *testing.T) {
	assert.NoError(t, Stakeholders([]string{"Kiruna kommun"}))
	assert.NoError(t, Stakeholders([]string{"LKAB", "Residents"}))

	assert.ErrorIs(t, Stakeholders(nil), ErrStakeholdersRequired)
	assert.ErrorIs(t, Stakeholders([]string{}), ErrStakeholdersRequired)
	assert.ErrorIs(t, Stakeholders([]string{"LKAB", "  "}), ErrStakeholdersRequired)
	assert.ErrorIs(t, Stakeholders([]string{"other"}), ErrStakeholderOther)
	assert.ErrorIs(t, Stakeholders([]string{"LKAB", "OtHeR"}), ErrStakeholderOther)
	assert.ErrorIs(t, Stakeholders([]string{"LKAB", "lkab "}), ErrStakeholdersDuplicate)
	assert.ErrorIs(t, Stakeholders([]string{"x"}), ErrStakeholderLength)
}

func TestTitleTypeAndOptional(t *testing.T) {
	assert.ErrorIs(t, Title(""), ErrTitleRequired)
	assert.ErrorIs(t, Title("   "), ErrTitleRequired)
	assert.ErrorIs(t, Title("a"), ErrTitleLength)
	assert.ErrorIs(t, Title(strings.Repeat("å", 65)), ErrTitleLength)
	assert.NoError(t, Title(strings.Repeat("å", 64)))

	assert.ErrorIs(t, Type(""), ErrTypeRequired)
	assert.ErrorIs(t, Type("Other"), ErrTypeOther)
	assert.ErrorIs(t, Type("x"), ErrTypeLength)
	assert.NoError(t, Type("Prescriptive document"))

	short, ok := "x", "Swedish"
	assert.NoError(t, Language(nil))
	assert.NoError(t, Language(&ok))
	assert.ErrorIs(t, Language(&short), ErrLanguageLength)

	neg, zero := -1, 0
	assert.NoError(t, NrPages(nil))
	assert.NoError(t, NrPages(&zero))
	assert.ErrorIs(t, NrPages(&neg), ErrNrPagesNegative)

	long, fine := strings.Repeat("a", 1001), strings.Repeat("a", 1000)
	assert.NoError(t, Description(&fine))
	assert.ErrorIs(t, Description(&long), ErrDescriptionLength)
}

func TestLinks(t *testing.T) {
	self := int64(3)
	assert.NoError(t, Links(&self, []model.Link{
		{DocumentID: 1, LinkType: model.LinkPrevision},
		{DocumentID: 1, LinkType: model.LinkUpdate},
	}))
	assert.ErrorIs(t, Links(nil, []model.Link{{DocumentID: 1, LinkType: "BOGUS"}}), ErrLinkType)
	assert.ErrorIs(t, Links(&self, []model.Link{{DocumentID: 3, LinkType: model.LinkUpdate}}), ErrLinkTarget)
	assert.ErrorIs(t, Links(nil, []model.Link{{DocumentID: 0, LinkType: model.LinkUpdate}}), ErrLinkTarget)
	assert.ErrorIs(t, Links(nil, []model.Link{
		{DocumentID: 2, LinkType: model.LinkUpdate},
		{DocumentID: 2, LinkType: model.LinkUpdate},
	}), ErrLinkDuplicate)
}
