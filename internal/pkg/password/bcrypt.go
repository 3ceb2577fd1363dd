package password

import "golang.org/x/crypto/bcrypt"

// Hasher é o colaborador opaco de hashing/comparação de senhas que a
// camada de Serviço consome. Os casos de uso não conhecem o algoritmo.
type Hasher interface {
	Hash(plain string) (string, error)
	Compare(plain, hash string) bool
}

// BcryptHasher implementa Hasher com bcrypt (golang.org/x/crypto).
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher cria um Hasher com o custo padrão do bcrypt.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash gera o hash bcrypt da senha em texto puro.
func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare verifica a senha em texto puro contra o hash armazenado.
func (h *BcryptHasher) Compare(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
