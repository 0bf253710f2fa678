package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gateway-identity/internal/pkg/config"
	pkgErrors "gateway-identity/pkg/responses"
)

func TestMain(m *testing.M) {
	config.GlobalConfig = &config.Config{
		Crypto: config.CryptoConfig{
			AESKey:     "0123456789abcdef0123456789abcdef",
			BcryptCost: 4,
		},
	}
	m.Run()
}

func TestHashAndVerifySecret(t *testing.T) {
	hash, err := HashSecret("s3cr3t")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cr3t", hash)

	assert.True(t, VerifySecret("s3cr3t", hash))
	assert.False(t, VerifySecret("wrong", hash))
}

func TestHashSecretDistinctSalts(t *testing.T) {
	h1, err := HashSecret("same")
	require.NoError(t, err)
	h2, err := HashSecret("same")
	require.NoError(t, err)

	// 盐值随机，同一明文产生不同哈希，但均可验证
	assert.NotEqual(t, h1, h2)
	assert.True(t, VerifySecret("same", h1))
	assert.True(t, VerifySecret("same", h2))
}

func TestHashSecretEmpty(t *testing.T) {
	_, err := HashSecret("")
	assert.Error(t, err)
}

func TestHashSecretInvalidCost(t *testing.T) {
	old := config.GlobalConfig.Crypto.BcryptCost
	config.GlobalConfig.Crypto.BcryptCost = 99
	defer func() { config.GlobalConfig.Crypto.BcryptCost = old }()

	_, err := HashSecret("s3cr3t")
	require.Error(t, err)

	// 哈希失败有独立错误码，可与其他内部错误区分
	appErr, ok := err.(*pkgErrors.AppError)
	require.True(t, ok)
	assert.Equal(t, pkgErrors.CodeHashingError, appErr.Code)
}

func TestVerifySecretMissingArgs(t *testing.T) {
	hash, err := HashSecret("s3cr3t")
	require.NoError(t, err)

	assert.False(t, VerifySecret("", hash))
	assert.False(t, VerifySecret("s3cr3t", ""))
	assert.False(t, VerifySecret("", ""))
}

func TestEncryptDecryptRoundtrip(t *testing.T) {
	ciphertext, err := Encrypt("hello gateway")
	require.NoError(t, err)
	assert.NotEqual(t, "hello gateway", ciphertext)

	plaintext, err := Decrypt(ciphertext)
	require.NoError(t, err)
	assert.Equal(t, "hello gateway", plaintext)
}

func TestEncryptRandomIV(t *testing.T) {
	c1, err := Encrypt("same plaintext")
	require.NoError(t, err)
	c2, err := Encrypt("same plaintext")
	require.NoError(t, err)

	// IV随机，相同明文产生不同密文
	assert.NotEqual(t, c1, c2)
}

func TestDecryptInvalidInput(t *testing.T) {
	_, err := Decrypt("not-base64!!!")
	assert.Error(t, err)

	_, err = Decrypt("c2hvcnQ=") // 合法base64但长度非法
	assert.Error(t, err)
}
