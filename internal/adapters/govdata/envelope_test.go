package govdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEnvelope_JSONObject(t *testing.T) {
	body := `{
		"response": {
			"header": {"resultCode": "00", "resultMsg": "NORMAL SERVICE."},
			"body": {
				"items": {"item": [
					{"kaptCode": "A10027875", "kaptName": "강변금호타운"},
					{"kaptCode": "A10027876", "kaptName": "대림강변"}
				]},
				"totalCount": 2
			}
		}
	}`

	env, err := decodeEnvelope([]byte(body))
	require.NoError(t, err)
	assert.True(t, env.success())
	assert.Equal(t, 2, env.TotalCount)
	require.Len(t, env.Items, 2)
	assert.Equal(t, "A10027875", asString(env.Items[0]["kaptCode"]))
}

func TestDecodeEnvelope_StringWrappedJSON(t *testing.T) {
	// some services double-encode the whole envelope as a JSON string
	body := `"{\"response\":{\"header\":{\"resultCode\":\"00\",\"resultMsg\":\"OK\"},\"body\":{\"item\":{\"kaptCode\":\"A13822009\"},\"totalCount\":1}}}"`

	env, err := decodeEnvelope([]byte(body))
	require.NoError(t, err)
	assert.True(t, env.success())
	require.NotNil(t, env.firstItem())
	assert.Equal(t, "A13822009", asString(env.firstItem()["kaptCode"]))
}

func TestDecodeEnvelope_XML(t *testing.T) {
	body := `<?xml version="1.0" encoding="UTF-8"?>
	<response>
		<header><resultCode>000</resultCode><resultMsg>OK</resultMsg></header>
		<body>
			<items>
				<item><aptNm>한강타운</aptNm><dealAmount>115,000</dealAmount></item>
				<item><aptNm>서초그랑자이</aptNm><dealAmount>320,000</dealAmount></item>
			</items>
			<totalCount>2</totalCount>
		</body>
	</response>`

	env, err := decodeEnvelope([]byte(body))
	require.NoError(t, err)
	assert.True(t, env.success())
	assert.Equal(t, 2, env.TotalCount)
	require.Len(t, env.Items, 2)
	assert.Equal(t, "한강타운", asString(env.Items[0]["aptNm"]))
	assert.Equal(t, "115,000", asString(env.Items[0]["dealAmount"]))
}

func TestDecodeEnvelope_XMLSingleItem(t *testing.T) {
	// a single <item> must not be flattened away
	body := `<response>
		<header><resultCode>00</resultCode><resultMsg>OK</resultMsg></header>
		<body>
			<items><item><aptNm>단일단지</aptNm></item></items>
			<totalCount>1</totalCount>
		</body>
	</response>`

	env, err := decodeEnvelope([]byte(body))
	require.NoError(t, err)
	require.Len(t, env.Items, 1)
	assert.Equal(t, "단일단지", asString(env.Items[0]["aptNm"]))
}

func TestDecodeEnvelope_BOMPrefix(t *testing.T) {
	body := "\xef\xbb\xbf" + `{"response":{"header":{"resultCode":"00","resultMsg":"OK"},"body":{"totalCount":0}}}`

	env, err := decodeEnvelope([]byte(body))
	require.NoError(t, err)
	assert.True(t, env.success())
	assert.Empty(t, env.Items)
}

func TestDecodeEnvelope_ErrorWithoutBody(t *testing.T) {
	body := `{"response":{"header":{"resultCode":"30","resultMsg":"SERVICE_KEY_IS_NOT_REGISTERED_ERROR"}}}`

	env, err := decodeEnvelope([]byte(body))
	require.NoError(t, err)
	assert.False(t, env.success())
	assert.Equal(t, "30", env.ResultCode)
	assert.Nil(t, env.firstItem())
}

func TestDecodeEnvelope_Garbage(t *testing.T) {
	_, err := decodeEnvelope([]byte(""))
	assert.Error(t, err)

	_, err = decodeEnvelope([]byte("not json at all"))
	assert.Error(t, err)

	_, err = decodeEnvelope([]byte(`{"no_header": true}`))
	assert.Error(t, err)
}

func TestDecodeEnvelope_EmptyItemsString(t *testing.T) {
	// the XML rendering of "no rows" is an empty <items/> element, which the
	// map converter turns into an empty string
	body := `<response>
		<header><resultCode>00</resultCode><resultMsg>OK</resultMsg></header>
		<body><items></items><totalCount>0</totalCount></body>
	</response>`

	env, err := decodeEnvelope([]byte(body))
	require.NoError(t, err)
	assert.True(t, env.success())
	assert.Empty(t, env.Items)
}
