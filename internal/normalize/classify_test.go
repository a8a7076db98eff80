package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHeaderText(t *testing.T) {
	v := DefaultVocabulary()

	assert.True(t, v.IsHeaderText("品名"))
	assert.True(t, v.IsHeaderText("数量 単価 金額"))
	assert.True(t, v.IsHeaderText("摘要"))
	assert.False(t, v.IsHeaderText("ノートPC"))
	assert.False(t, v.IsHeaderText(""))
}

func TestIsAddressText(t *testing.T) {
	v := DefaultVocabulary()

	assert.True(t, v.IsAddressText("東京都千代田区丸の内1-1-1"))
	assert.True(t, v.IsAddressText("大阪府大阪市北区梅田2-3"))
	// honorific lines are addressee lines, not addresses
	assert.False(t, v.IsAddressText("東京都千代田区 サンプル商事 御中"))
	assert.False(t, v.IsAddressText("ノートPC"))
}

func TestIsPhoneNumber(t *testing.T) {
	v := DefaultVocabulary()

	assert.True(t, v.IsPhoneNumber("03-1234-5678"))
	assert.True(t, v.IsPhoneNumber("TEL: 0120-444-444"))
	assert.False(t, v.IsPhoneNumber("2023-04-01"))
	assert.False(t, v.IsPhoneNumber("50,000"))

	assert.Equal(t, "03-1234-5678", v.FindPhoneNumber("TEL 03-1234-5678 FAX 03-1234-5679"))
	assert.Equal(t, "", v.FindPhoneNumber("no phone here"))
}

func TestIsCompanyName(t *testing.T) {
	v := DefaultVocabulary()

	assert.True(t, v.IsCompanyName("株式会社サンプル"))
	assert.True(t, v.IsCompanyName("サンプル有限会社"))
	assert.True(t, v.IsCompanyName("㈱テスト"))
	// the honorific marks the customer, not the issuer's company block
	assert.False(t, v.IsCompanyName("株式会社サンプル 御中"))
	assert.False(t, v.IsCompanyName("サンプル太郎"))
}
