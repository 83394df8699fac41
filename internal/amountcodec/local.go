package amountcodec

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// Локальный шифр хранит значения в формате local:ivHex:keyHex:cipherHex (AES-256-CBC, PKCS#7).
// Ключ лежит рядом с шифротекстом, поэтому формат не защищает данные в покое. Включается только
// через Options.InsecureLocalFallback.
const (
	localMarker    = "local"
	localSeparator = ":"
	localParts     = 4
	localKeySize   = 32
)

var errMalformedLocal = errors.New("malformed local ciphertext")

func isLocalCiphertext(raw string) bool {
	return strings.HasPrefix(raw, localMarker+localSeparator)
}

func encryptLocal(plain string) (string, error) {
	key := make([]byte, localKeySize)
	if _, err := rand.Read(key); err != nil {
		return "", errors.Wrap(err, "generate key")
	}
	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return "", errors.Wrap(err, "generate iv")
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", errors.Wrap(err, "init cipher")
	}

	padded := pkcs7Pad([]byte(plain), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(out, padded)

	return strings.Join([]string{
		localMarker,
		hex.EncodeToString(iv),
		hex.EncodeToString(key),
		hex.EncodeToString(out),
	}, localSeparator), nil
}

func decryptLocal(raw string) (string, error) {
	parts := strings.Split(raw, localSeparator)
	if len(parts) != localParts || parts[0] != localMarker {
		return "", errMalformedLocal
	}

	iv, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", errors.Wrap(err, "decode iv")
	}
	key, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", errors.Wrap(err, "decode key")
	}
	data, err := hex.DecodeString(parts[3])
	if err != nil {
		return "", errors.Wrap(err, "decode ciphertext")
	}
	if len(iv) != aes.BlockSize || len(data) == 0 || len(data)%aes.BlockSize != 0 {
		return "", errMalformedLocal
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return "", errors.Wrap(err, "init cipher")
	}

	out := make([]byte, len(data))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(out, data)

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	padding := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padding)}, padding)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, errors.New("invalid padded length")
	}
	padding := int(data[len(data)-1])
	if padding == 0 || padding > blockSize {
		return nil, errors.New("invalid padding")
	}
	for _, b := range data[len(data)-padding:] {
		if int(b) != padding {
			return nil, errors.New("invalid padding")
		}
	}
	return data[:len(data)-padding], nil
}
