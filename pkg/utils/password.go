package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GeneratePassword gera uma senha aleatória para novos operadores do dashboard
func GeneratePassword(length int) (string, error) {
	return gonanoid.Generate(characters, length)
}
