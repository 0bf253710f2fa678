package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/bcrypt"

	"gateway-identity/internal/pkg/config"
	pkgErrors "gateway-identity/pkg/responses"
)

// HashSecret 哈希密钥 (bcrypt，盐值包含在哈希结果中)
func HashSecret(secret string) (string, error) {
	if secret == "" {
		return "", pkgErrors.New(pkgErrors.CodeBadRequest, "密钥不能为空")
	}

	cost := bcrypt.DefaultCost
	if config.GlobalConfig != nil && config.GlobalConfig.Crypto.BcryptCost > 0 {
		cost = config.GlobalConfig.Crypto.BcryptCost
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), cost)
	if err != nil {
		return "", pkgErrors.Wrap(pkgErrors.CodeHashingError, "密钥哈希失败", err)
	}
	return string(hashed), nil
}

// VerifySecret 验证密钥，参数缺失时直接返回false不进入bcrypt
func VerifySecret(secret, hash string) bool {
	if secret == "" || hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret))
	return err == nil
}

// Encrypt AES-CBC加密，随机IV前置到密文，Base64输出
// 用于需要还原明文的场景，凭据密钥只走单向哈希
func Encrypt(plaintext string) (string, error) {
	key := []byte(config.GlobalConfig.Crypto.AESKey)

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	// PKCS#7填充
	padded := pkcs7Pad([]byte(plaintext), block.BlockSize())

	// 生成IV
	ciphertext := make([]byte, aes.BlockSize+len(padded))
	iv := ciphertext[:aes.BlockSize]
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", err
	}

	// 加密
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext[aes.BlockSize:], padded)

	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt AES-CBC解密
func Decrypt(ciphertext string) (string, error) {
	key := []byte(config.GlobalConfig.Crypto.AESKey)

	ciphertextBytes, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", err
	}

	if len(ciphertextBytes) < aes.BlockSize || len(ciphertextBytes)%aes.BlockSize != 0 {
		return "", fmt.Errorf("密文长度非法")
	}

	// 提取IV和密文
	iv, ciphertextBytes := ciphertextBytes[:aes.BlockSize], ciphertextBytes[aes.BlockSize:]

	mode := cipher.NewCBCDecrypter(block, iv)
	plaintext := make([]byte, len(ciphertextBytes))
	mode.CryptBlocks(plaintext, ciphertextBytes)

	unpadded, err := pkcs7Unpad(plaintext)
	if err != nil {
		return "", err
	}
	return string(unpadded), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("数据为空")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > len(data) {
		return nil, fmt.Errorf("填充非法")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, fmt.Errorf("填充非法")
		}
	}
	return data[:len(data)-padding], nil
}
