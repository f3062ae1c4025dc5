package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const defaultCodeLength = 8

// GenerateCode gera o código público curto de uma venda
func GenerateCode(length int) (string, error) {
	if length <= 0 {
		length = defaultCodeLength
	}
	return gonanoid.Generate(characters, length)
}
